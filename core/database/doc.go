// Package database handles SQL connections and result-set inspection.
//
// It wraps GORM (Go Object Relational Mapping) to open connections for every SQL backend a
// comparison can read from: MySQL, PostgreSQL, SQL Server and SQLite. Connections are
// verified with a bounded ping before being handed out.
//
// # Connect
//
// Connect selects the dialector from Config.Driver and opens Config.DSN. ConnectWith accepts a
// ready dialector, which tests use to put go-sqlmock behind the MySQL dialector.
//
// # Inspection
//
// GetTableColumns probes a table's columns with a query that returns no rows, and RowColumns
// describes an open result set. The relational provider uses the type names to decide which
// values to normalize (character columns, exact numerics, dates).
//
// # Usage
//
//	db, err := database.Connect(database.Config{Driver: "sqlserver", DSN: dsn})
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(ctx, db, "dbo.customers")
package database
