// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// SQLite (the default, file-based) and MySQL connections based on the application's
// configuration.
//
// # Connect
//
// The Connect function establishes a connection to the configured database. The driver
// is selected by Config.Driver; SQLite paths may be a file or ":memory:" for tests.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, used at startup to verify
// that the components and circuit_bom tables carry the columns the services query.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	problems := database.VerifyTables(db, map[string][]string{"components": {"id", "type"}})
package database
