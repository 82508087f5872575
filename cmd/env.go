package cmd

import (
	"fmt"

	"pedalbuild/core/config"
	"pedalbuild/core/database"
	"pedalbuild/core/logger"
	bommodels "pedalbuild/feature/bom/models"
	invmodels "pedalbuild/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment bundles the pieces every CLI subcommand needs.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// newEnvironment loads configuration and connects to the database for
// one-shot CLI commands.
func newEnvironment() (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// one-shot commands must work against a fresh database file
	if err := db.AutoMigrate(&invmodels.Component{}, &bommodels.CircuitBOMItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &environment{cfg: cfg, logger: l, db: db}, nil
}
