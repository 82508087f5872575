package importer

import (
	"pedalbuild/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new import feature. store may be nil to disable
// the archive.
func NewFeature(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger) *Feature {
	svc := NewService(db, store, bucket, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the underlying service for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "importer"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
