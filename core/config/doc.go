// Package config provides configuration management for PedalBuild.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file (loaded via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, CORS origins)
//   - Database: SQLite/MySQL connection details
//   - Storage: S3/MinIO credentials for the optional import archive
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
