package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"pedalbuild/core/storage"
	inventory "pedalbuild/feature/inventory/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrArchiveDisabled is returned by archive operations when no object
// storage client is configured.
var ErrArchiveDisabled = errors.New("import archive is not enabled")

// Result summarizes one import run.
type Result struct {
	Preview         bool           `json:"preview"`
	TotalComponents int            `json:"total_components"`
	Inserted        int            `json:"inserted"`
	Skipped         int            `json:"skipped"`
	ByType          map[string]int `json:"by_type"`
}

// Service loads vendor CSV files into the components table.
// store may be nil; imports then run without archiving.
type Service struct {
	db     *gorm.DB
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new import service.
func NewService(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, store: store, bucket: bucket, logger: logger}
}

// Import parses the CSV and inserts its components. Rows whose derived id
// already exists (in the file or in the table) are skipped, not updated.
// With preview set, nothing is written and nothing is archived.
func (s *Service) Import(ctx context.Context, r io.Reader, filename string, preview bool) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	components, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Preview:         preview,
		TotalComponents: len(components),
		ByType:          make(map[string]int, len(components)),
	}
	for _, component := range components {
		result.ByType[string(component.Type)]++
	}

	if preview {
		return result, nil
	}

	for _, component := range components {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&inventory.Component{}).
			Where("id = ?", component.ID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check component %s: %w", component.ID, err)
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		if err := s.db.WithContext(ctx).Create(&component).Error; err != nil {
			return nil, fmt.Errorf("failed to insert component %s: %w", component.ID, err)
		}
		result.Inserted++
	}

	s.logger.Info("import complete",
		zap.String("filename", filename),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped))

	if s.store != nil {
		if err := s.archive(ctx, filename, data); err != nil {
			// the inventory rows already landed; losing the archive copy
			// is not worth failing the import over
			s.logger.Warn("import archive failed", zap.String("filename", filename), zap.Error(err))
		}
	}

	return result, nil
}

// archive stores the raw upload under imports/<timestamp>_<filename>.
func (s *Service) archive(ctx context.Context, filename string, data []byte) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	object := fmt.Sprintf("imports/%s_%s", time.Now().UTC().Format("20060102T150405Z"), filepath.Base(filename))
	_, err = s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", object, err)
	}
	return nil
}

// ListArchive returns the object names of previously archived imports.
func (s *Service) ListArchive(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}

	names := []string{}
	for object := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    "imports/",
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}

// FetchArchived streams a previously archived import file.
func (s *Service) FetchArchived(ctx context.Context, object string) (io.ReadCloser, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}
	return s.store.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
}
