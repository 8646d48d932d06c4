package relational

import (
	"context"
	"errors"
	"fmt"

	"db-compare/core/database"
	"db-compare/core/provider"
	"db-compare/core/record"

	"gorm.io/gorm"
)

// Provider reads records from a SQL table or query.
type Provider struct {
	db       *gorm.DB
	kind     provider.Kind
	settings provider.Settings
}

// Open connects to the database described by settings.
func Open(settings provider.Settings) (*Provider, error) {
	kind, err := settings.Kind()
	if err != nil {
		return nil, err
	}
	if !kind.IsRelational() {
		return nil, fmt.Errorf("%s is not a relational database type", kind)
	}

	db, err := database.Connect(database.Config{Driver: string(kind), DSN: settings.ConnString})
	if err != nil {
		return nil, provider.NewError(kind, "connect", err)
	}
	return New(db, kind, settings), nil
}

// New wraps an open connection.
func New(db *gorm.DB, kind provider.Kind, settings provider.Settings) *Provider {
	return &Provider{db: db, kind: kind, settings: settings}
}

// Close closes the connection pool.
func (p *Provider) Close() error {
	return database.Close(p.db)
}

// GetRecords reads all rows, restricted to the requested fields.
func (p *Provider) GetRecords(ctx context.Context, fields []string) ([]record.Record, error) {
	query := p.settings.Query
	if query == "" {
		columns, err := database.GetTableColumns(ctx, p.db, p.settings.TableName)
		if err != nil {
			return nil, provider.NewError(p.kind, "inspect", err)
		}
		pl := buildPlan(columns, fields)
		if len(pl.selected) == 0 {
			return nil, provider.NewError(p.kind, "plan",
				fmt.Errorf("table %s has none of the requested fields", p.settings.TableName))
		}
		query = pl.selectSQL(string(p.kind), p.settings.TableName)
	}

	rows, err := p.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, provider.NewError(p.kind, "query", err)
	}
	defer rows.Close()

	columns, err := database.RowColumns(rows)
	if err != nil {
		return nil, provider.NewError(p.kind, "query", err)
	}
	pl := buildPlan(columns, fields)

	var out []record.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, provider.NewError(p.kind, "scan", err)
		}
		out = append(out, toRecord(columns, values, pl, fields))
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, provider.NewError(p.kind, "query", err)
	}

	return out, nil
}

// toRecord builds one record from a scanned row. Every requested field is present.
func toRecord(columns []database.ColumnInfo, values []any, pl plan, fields []string) record.Record {
	var rec record.Record
	arrays := make(map[string][]record.Value)
	var arrayOrder []string

	for i, col := range columns {
		if base, ok := pl.arrays[col.Name]; ok {
			if _, seen := arrays[base]; !seen {
				arrays[base] = nil
				arrayOrder = append(arrayOrder, base)
			}
			v := normalize(col, values[i], false)
			if v.IsNull() {
				continue
			}
			arrays[base] = append(arrays[base], v)
			continue
		}
		if _, ok := pl.scalars[col.Name]; ok {
			rec.Set(col.Name, normalize(col, values[i], true))
		}
	}

	for _, base := range arrayOrder {
		items := arrays[base]
		if len(items) == 0 {
			// All elements null
			rec.Set(base, record.Null())
			continue
		}
		rec.Set(base, record.Array(items...))
	}

	return rec.Project(fields)
}
