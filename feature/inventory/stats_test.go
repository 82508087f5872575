package inventory_test

import (
	"context"
	"testing"

	"pedalbuild/feature/inventory"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// The aggregation query runs as raw SQL, so pin its shape against a mock
// to catch accidental rewrites.
func TestStatisticsQueryShape(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := inventory.NewService(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"type", "type_count", "total_units", "low_stock", "out_of_stock"}).
		AddRow("capacitor", 3, 40, 1, 0).
		AddRow("resistor", 5, 220, 2, 1)

	mock.ExpectQuery(`(?s)SELECT.*COUNT\(\*\).*FROM components.*GROUP BY type.*ORDER BY type`).
		WillReturnRows(rows)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalTypes)
	assert.Equal(t, 260, stats.TotalUnits)
	assert.Equal(t, 3, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
