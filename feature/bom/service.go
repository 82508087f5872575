package bom

import (
	"context"
	"errors"
	"fmt"

	"pedalbuild/feature/bom/models"
	inventory "pedalbuild/feature/inventory/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LowConfidenceThreshold is the fixed cutoff below which a BOM line counts
// as low confidence in statistics.
const LowConfidenceThreshold = 0.7

// ErrInvalidItem signals a BOM item that failed boundary validation.
var ErrInvalidItem = errors.New("invalid bom item")

// Searcher is the slice of the inventory service the reconciler depends on.
type Searcher interface {
	Search(ctx context.Context, query string) ([]inventory.Component, error)
}

// Service owns circuit BOM records and the validation algorithm.
type Service struct {
	db       *gorm.DB
	searcher Searcher
	logger   *zap.Logger
}

// NewService creates a new BOM service. The searcher is usually the
// inventory service; it is injected so validation can be tested in isolation.
func NewService(db *gorm.DB, searcher Searcher, logger *zap.Logger) *Service {
	return &Service{db: db, searcher: searcher, logger: logger}
}

// GetBOM returns all BOM items for a circuit, ordered by
// (component_type, component_value). An unknown circuit and an empty circuit
// are indistinguishable here; both yield an empty slice.
func (s *Service) GetBOM(ctx context.Context, circuitID string) ([]models.CircuitBOMItem, error) {
	var items []models.CircuitBOMItem
	err := s.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		Order("component_type, component_value").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetBOMByType returns the circuit's BOM grouped by component type.
func (s *Service) GetBOMByType(ctx context.Context, circuitID string) ([]models.TypeGroup, error) {
	items, err := s.GetBOM(ctx, circuitID)
	if err != nil {
		return nil, err
	}
	return GroupByType(items), nil
}

// GroupByType folds BOM items into per-type groups. Group order is the
// first occurrence of each type in the input; within a group the input
// order is preserved.
func GroupByType(items []models.CircuitBOMItem) []models.TypeGroup {
	index := make(map[inventory.ComponentType]int)
	groups := make([]models.TypeGroup, 0)

	for _, item := range items {
		i, ok := index[item.ComponentType]
		if !ok {
			i = len(groups)
			index[item.ComponentType] = i
			groups = append(groups, models.TypeGroup{Type: item.ComponentType})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// AddItem validates the item and inserts it with a generated surrogate id.
// The caller-supplied id (if any) is ignored.
func (s *Service) AddItem(ctx context.Context, circuitID string, item models.CircuitBOMItem) (*models.CircuitBOMItem, error) {
	if !item.ComponentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown component type %q", ErrInvalidItem, item.ComponentType)
	}
	if item.ComponentValue == "" {
		return nil, fmt.Errorf("%w: component value is required", ErrInvalidItem)
	}
	if item.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidItem)
	}
	if item.ConfidenceScore < 0 || item.ConfidenceScore > 1 {
		return nil, fmt.Errorf("%w: confidence score must be within [0, 1]", ErrInvalidItem)
	}

	item.ID = uuid.NewString()
	item.CircuitID = circuitID

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Statistics aggregates the circuit's BOM: total items, per-type counts,
// critical lines, and lines under the low-confidence threshold.
func (s *Service) Statistics(ctx context.Context, circuitID string) (*models.Stats, error) {
	items, err := s.GetBOM(ctx, circuitID)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalItems: len(items),
		ByType:     make(map[string]int),
	}
	for _, item := range items {
		stats.ByType[string(item.ComponentType)]++
		if item.IsCritical {
			stats.CriticalCount++
		}
		if item.ConfidenceScore < LowConfidenceThreshold {
			stats.LowConfidenceCount++
		}
	}

	return stats, nil
}
