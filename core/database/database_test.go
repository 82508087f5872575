package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In-Memory", func(t *testing.T) {
		cfg := Config{
			Driver: DriverSQLite,
			Path:   ":memory:",
		}

		db, err := Connect(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Invalid Driver", func(t *testing.T) {
		cfg := Config{Driver: "postgres"}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "pedalbuild",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestConfig_IsValidDriver(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   bool
	}{
		{"SQLite", DriverSQLite, true},
		{"MySQL", DriverMySQL, true},
		{"Invalid", "postgres", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Driver: tt.driver}
			assert.Equal(t, tt.want, c.IsValidDriver())
		})
	}
}
