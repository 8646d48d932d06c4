package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"db-compare/core/record"
)

// Provider produces normalized records from one data source.
type Provider interface {
	// GetRecords reads every record of the configured table, collection or query,
	// restricted to the given fields.
	GetRecords(ctx context.Context, fields []string) ([]record.Record, error)

	// Close releases the underlying connection.
	Close() error
}

// Kind identifies a data-source backend.
type Kind string

const (
	// KindMongoDB is a MongoDB document store.
	KindMongoDB Kind = "mongodb"
	// KindSQLServer is Microsoft SQL Server.
	KindSQLServer Kind = "sqlserver"
	// KindMySQL is MySQL or MariaDB.
	KindMySQL Kind = "mysql"
	// KindPostgres is PostgreSQL.
	KindPostgres Kind = "postgres"
	// KindSQLite is a SQLite file or in-memory database.
	KindSQLite Kind = "sqlite"
)

// ErrUnsupportedKind is returned by ParseKind for unknown backend names.
var ErrUnsupportedKind = errors.New("unsupported database type")

// ParseKind maps a configured backend name to a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mongodb", "mongo":
		return KindMongoDB, nil
	case "sqlserver", "mssql":
		return KindSQLServer, nil
	case "mysql", "mariadb":
		return KindMySQL, nil
	case "postgres", "postgresql", "pg":
		return KindPostgres, nil
	case "sqlite", "sqlite3":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// IsRelational reports whether the kind is served by the relational provider.
func (k Kind) IsRelational() bool {
	switch k {
	case KindSQLServer, KindMySQL, KindPostgres, KindSQLite:
		return true
	default:
		return false
	}
}

// Settings describes one data source of a comparison.
type Settings struct {
	// Type is the backend name, parsed with ParseKind.
	Type string `mapstructure:"type" json:"type" validate:"required"`

	// ConnString is the backend connection string (Mongo URI or SQL DSN).
	ConnString string `mapstructure:"conn_string" json:"conn_string" validate:"required"`

	// TableName is the table or collection to read.
	TableName string `mapstructure:"table_name" json:"table_name"`

	// Query is an optional raw query: a SQL statement, or an extended JSON filter for Mongo.
	Query string `mapstructure:"query" json:"query"`

	// Aggregate is an optional extended JSON aggregation pipeline (Mongo only).
	// It takes precedence over Query.
	Aggregate string `mapstructure:"aggregate" json:"aggregate"`
}

// Kind parses the configured backend type.
func (s Settings) Kind() (Kind, error) {
	return ParseKind(s.Type)
}

// Validate checks that the settings can select and drive a provider.
func (s Settings) Validate() error {
	kind, err := s.Kind()
	if err != nil {
		return err
	}
	if strings.TrimSpace(s.ConnString) == "" {
		return errors.New("conn_string is required")
	}
	if kind.IsRelational() {
		if s.TableName == "" && s.Query == "" {
			return errors.New("table_name or query is required")
		}
		if s.Aggregate != "" {
			return fmt.Errorf("aggregate is not supported for %s", kind)
		}
		return nil
	}
	if s.TableName == "" {
		return errors.New("table_name is required")
	}
	return nil
}
