// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL, PostgreSQL, SQLite and SQL Server connections from the
// application's configuration, and exposes the small amount of engine-specific
// SQL the comparison needs through the Dialect interface.
//
// # Connect
//
// Connect opens a pooled connection and verifies it with a ping bounded by
// TimeoutSeconds. The DSN field is passed to the driver untouched; the host
// fields are only used to build a DSN when none is configured, with an unset
// port falling back to the engine default.
//
// # Schema Inspection
//
// ListUserTables enumerates the user tables of a connection ordered by schema
// and table name. ListColumns returns the column names of one table in ordinal
// position order; a missing table yields an empty list rather than an error.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database.New)
//	if err != nil {
//	    return err
//	}
//
//	tables, err := database.ListUserTables(ctx, db)
//	columns, err := database.ListColumns(ctx, db, tables[0])
package database
