package inventory_test

import (
	"context"
	"testing"

	"pedalbuild/core/database"
	"pedalbuild/feature/inventory"
	"pedalbuild/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Component{}))
	return db
}

func seedComponents(t *testing.T, db *gorm.DB, components ...models.Component) {
	t.Helper()
	for i := range components {
		require.NoError(t, db.Create(&components[i]).Error)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Name: "Metal Film 10k", Value: "10k", QuantityInStock: 100},
		models.Component{ID: "resistor_1k", Type: models.TypeResistor, Name: "Metal Film 1k", Value: "1k", QuantityInStock: 50},
		models.Component{ID: "capacitor_100nf", Type: models.TypeCapacitor, Name: "Film 100nF", Value: "100nF", QuantityInStock: 20},
	)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// ordered by (type, value): capacitor first, then resistors by value
	assert.Equal(t, "capacitor_100nf", all[0].ID)
	assert.Equal(t, "resistor_10k", all[1].ID)
	assert.Equal(t, "resistor_1k", all[2].ID)

	resistors, err := svc.List(context.Background(), models.TypeResistor)
	require.NoError(t, err)
	require.Len(t, resistors, 2)
	for _, c := range resistors {
		assert.Equal(t, models.TypeResistor, c.Type)
	}
}

func TestGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	_, err := svc.Get(context.Background(), "resistor_10k")
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestLowStock(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 100, MinimumQuantity: 20},
		models.Component{ID: "resistor_1k", Type: models.TypeResistor, Value: "1k", QuantityInStock: 5, MinimumQuantity: 20},
		models.Component{ID: "ic_tl072", Type: models.TypeIC, Value: "TL072", QuantityInStock: 0, MinimumQuantity: 5},
	)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "ic_tl072", low[0].ID)
	assert.Equal(t, "resistor_1k", low[1].ID)
}

func TestUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 50},
	)

	newQty, err := svc.UpdateQuantity(context.Background(), "resistor_10k", 10)
	require.NoError(t, err)
	assert.Equal(t, 60, newQty)

	newQty, err = svc.UpdateQuantity(context.Background(), "resistor_10k", -20)
	require.NoError(t, err)
	assert.Equal(t, 40, newQty)
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	_, err := svc.UpdateQuantity(context.Background(), "missing", 5)
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	// no row may be created as a side effect
	var count int64
	require.NoError(t, db.Model(&models.Component{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateQuantityInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 3},
	)

	_, err := svc.UpdateQuantity(context.Background(), "resistor_10k", -5)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	// the guarded update must leave the row untouched
	component, err := svc.Get(context.Background(), "resistor_10k")
	require.NoError(t, err)
	assert.Equal(t, 3, component.QuantityInStock)
}

func TestStatistics(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 100, MinimumQuantity: 20},
		models.Component{ID: "resistor_1k", Type: models.TypeResistor, Value: "1k", QuantityInStock: 5, MinimumQuantity: 20},
		models.Component{ID: "ic_tl072", Type: models.TypeIC, Value: "TL072", QuantityInStock: 0, MinimumQuantity: 5},
	)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTypes)
	assert.Equal(t, 105, stats.TotalUnits)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.Equal(t, models.TypeStats{Types: 2, Units: 105}, stats.ByType["resistor"])
	assert.Equal(t, models.TypeStats{Types: 1, Units: 0}, stats.ByType["ic"])
}

func TestStatisticsEmptyInventory(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTypes)
	assert.Zero(t, stats.TotalUnits)
	assert.Empty(t, stats.ByType)
}
