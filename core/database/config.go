package database

// Config holds configuration for a database connection.
type Config struct {
	// Driver is the database driver (mysql, postgres, sqlserver, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// DSN is the driver-specific connection string.
	DSN string `mapstructure:"dsn" default:""`
	// TimeoutSeconds bounds the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)
