package inventory

import (
	"context"
	"errors"
	"time"

	"pedalbuild/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound signals that no component exists for the given id.
	ErrNotFound = errors.New("component not found")
	// ErrInsufficientStock signals a quantity delta that would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock for requested delta")
)

// Service is the authoritative view of on-hand components.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// List returns all components, optionally filtered to one type,
// ordered by (type, value) for deterministic display.
func (s *Service) List(ctx context.Context, compType models.ComponentType) ([]models.Component, error) {
	q := s.db.WithContext(ctx).Order("type, value")
	if compType != "" {
		q = q.Where("type = ?", compType)
	}

	var components []models.Component
	if err := q.Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// Search returns components whose value, name, or part number contains the
// query as a substring, ranked by match strength (see RankMatches). The first
// result is what BOM validation treats as "the" match.
func (s *Service) Search(ctx context.Context, query string) ([]models.Component, error) {
	pattern := "%" + query + "%"

	var components []models.Component
	err := s.db.WithContext(ctx).
		Where("value LIKE ? OR name LIKE ? OR part_number LIKE ?", pattern, pattern, pattern).
		Find(&components).Error
	if err != nil {
		return nil, err
	}

	RankMatches(query, components)
	return components, nil
}

// Get returns a single component or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Component, error) {
	var component models.Component
	err := s.db.WithContext(ctx).First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

// LowStock returns components at or below their reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]models.Component, error) {
	var components []models.Component
	err := s.db.WithContext(ctx).
		Where("quantity_in_stock <= minimum_quantity").
		Order("type, value").
		Find(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

// UpdateQuantity atomically adds delta (which may be negative) to the
// component's stock and returns the new quantity. The update is guarded:
// a delta that would cross zero is rejected with ErrInsufficientStock and
// leaves the row untouched. Unknown ids return ErrNotFound; no row is created.
func (s *Service) UpdateQuantity(ctx context.Context, id string, delta int) (int, error) {
	res := s.db.WithContext(ctx).Model(&models.Component{}).
		Where("id = ? AND quantity_in_stock + ? >= 0", id, delta).
		Updates(map[string]any{
			"quantity_in_stock": gorm.Expr("quantity_in_stock + ?", delta),
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// Distinguish an unknown id from a guarded refusal.
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Component{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientStock
	}

	component, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return component.QuantityInStock, nil
}

// Statistics aggregates per-type counts plus global totals.
func (s *Service) Statistics(ctx context.Context) (*models.InventoryStats, error) {
	type typeRow struct {
		Type       string
		TypeCount  int
		TotalUnits int
		LowStock   int
		OutOfStock int
	}

	var rows []typeRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			type,
			COUNT(*) AS type_count,
			COALESCE(SUM(quantity_in_stock), 0) AS total_units,
			SUM(CASE WHEN quantity_in_stock <= minimum_quantity THEN 1 ELSE 0 END) AS low_stock,
			SUM(CASE WHEN quantity_in_stock = 0 THEN 1 ELSE 0 END) AS out_of_stock
		FROM components
		GROUP BY type
		ORDER BY type`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &models.InventoryStats{
		ByType: make(map[string]models.TypeStats, len(rows)),
	}
	for _, row := range rows {
		stats.ByType[row.Type] = models.TypeStats{
			Types: row.TypeCount,
			Units: row.TotalUnits,
		}
		stats.TotalTypes += row.TypeCount
		stats.TotalUnits += row.TotalUnits
		stats.LowStockCount += row.LowStock
		stats.OutOfStockCount += row.OutOfStock
	}

	return stats, nil
}
