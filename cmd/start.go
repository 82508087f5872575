package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pedalbuild/core/config"
	"pedalbuild/core/database"
	"pedalbuild/core/loader"
	"pedalbuild/core/logger"
	"pedalbuild/core/middleware/rayid"
	"pedalbuild/core/storage"

	"pedalbuild/feature/bom"
	bommodels "pedalbuild/feature/bom/models"
	"pedalbuild/feature/importer"
	"pedalbuild/feature/inventory"
	invmodels "pedalbuild/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "pedalbuild/docs/swagger"
)

// @title PedalBuild API
// @version 1.0
// @description Inventory and BOM tracking for guitar pedal builds.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pedalbuild server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&invmodels.Component{}, &bommodels.CircuitBOMItem{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		if missing := database.VerifyTables(db, map[string][]string{
			"components":  {"id", "type", "value", "quantity_in_stock"},
			"circuit_bom": {"id", "circuit_id", "component_type", "component_value", "quantity"},
		}); len(missing) > 0 {
			logg.Warn("Schema verification found gaps", zap.Strings("missing", missing))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			logg.Info("Import archive enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.AllowOrigins,
		}))

		// Request logging via Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"service": "pedalbuild", "version": "1.0"})
		})
		app.Get("/health", func(c *fiber.Ctx) error {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Context())
			}
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "error": err.Error()})
			}
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 6. Load Features
		inventoryFeature := inventory.NewFeature(db, logg)

		mgr := loader.NewManager()
		mgr.Register(inventoryFeature)
		mgr.Register(bom.NewFeature(db, inventoryFeature.Service(), logg))
		mgr.Register(importer.NewFeature(db, store, cfg.Storage.Bucket, logg))

		api := app.Group("/api")
		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
