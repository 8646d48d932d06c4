package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a result set.
type ColumnInfo struct {
	// Name is the column name as returned by the driver.
	Name string
	// Type is the lowercase database type name (e.g. "varchar", "decimal"), "" if unknown.
	Type string
}

// IsText reports whether the column holds character data.
func (c ColumnInfo) IsText() bool {
	return strings.Contains(c.Type, "char") || strings.Contains(c.Type, "text")
}

// numericPrefixes lists type-name prefixes of numeric columns. Matching on prefixes keeps
// types such as "point" out.
var numericPrefixes = []string{
	"int", "tinyint", "smallint", "mediumint", "bigint", "unsigned",
	"float", "double", "real", "decimal", "numeric", "money", "smallmoney",
}

// IsNumeric reports whether the column holds numbers, including exact numerics that
// drivers return as text.
func (c ColumnInfo) IsNumeric() bool {
	if strings.HasPrefix(c.Type, "interval") {
		return false
	}
	for _, p := range numericPrefixes {
		if strings.HasPrefix(c.Type, p) {
			return true
		}
	}
	return false
}

// IsDate reports whether the column holds dates or timestamps.
func (c ColumnInfo) IsDate() bool {
	return strings.Contains(c.Type, "date") || strings.Contains(c.Type, "time")
}

// RowColumns returns the column descriptions of an open result set.
func RowColumns(rows *sql.Rows) ([]ColumnInfo, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}
	columns := make([]ColumnInfo, len(types))
	for i, ct := range types {
		columns[i] = ColumnInfo{
			Name: ct.Name(),
			Type: strings.ToLower(ct.DatabaseTypeName()),
		}
	}
	return columns, nil
}

// GetTableColumns retrieves the column definitions of a table without reading any rows.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	rows, err := db.WithContext(ctx).Raw(fmt.Sprintf("SELECT * FROM %s WHERE 1=0", tableName)).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	defer rows.Close()

	return RowColumns(rows)
}

// QuoteIdentifier quotes a column name for the given driver. Dots are kept inside the
// identifier so that "tags.0" stays a single column name.
func QuoteIdentifier(driver, name string) string {
	switch driver {
	case DriverSQLServer:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	case DriverMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}
