package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"MongoDB", KindMongoDB, false},
		{"SQLServer", KindSQLServer, false},
		{"mssql", KindSQLServer, false},
		{" MySQL ", KindMySQL, false},
		{"postgresql", KindPostgres, false},
		{"sqlite3", KindSQLite, false},
		{"oracle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedKind)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{"MongoOK", Settings{Type: "mongodb", ConnString: "mongodb://h/db", TableName: "people"}, ""},
		{"MongoNeedsCollection", Settings{Type: "mongodb", ConnString: "mongodb://h/db"}, "table_name is required"},
		{"SQLTable", Settings{Type: "sqlserver", ConnString: "sqlserver://h", TableName: "people"}, ""},
		{"SQLQuery", Settings{Type: "mysql", ConnString: "u@tcp(h)/db", Query: "select 1"}, ""},
		{"SQLNeedsSource", Settings{Type: "mysql", ConnString: "u@tcp(h)/db"}, "table_name or query is required"},
		{"SQLRejectsAggregate", Settings{Type: "sqlite", ConnString: ":memory:", TableName: "t", Aggregate: "[]"}, "aggregate is not supported"},
		{"MissingConn", Settings{Type: "mongodb", TableName: "x"}, "conn_string is required"},
		{"UnknownType", Settings{Type: "csv", ConnString: "x", TableName: "x"}, "unsupported database type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("failed to load source: %w", NewError(KindMySQL, "connect", cause))

	assert.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, cause)

	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "connect", perr.Op)
	assert.Equal(t, "mysql connect failed: connection refused", perr.Error())
}
