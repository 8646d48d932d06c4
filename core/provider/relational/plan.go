package relational

import (
	"regexp"
	"strings"

	"db-compare/core/database"
)

// arrayColumn matches flattened array columns such as "tags.0".
var arrayColumn = regexp.MustCompile(`^(\w+)\.[0-9]+$`)

// plan maps result columns onto requested fields.
type plan struct {
	// selected lists the columns to read, in result order.
	selected []string
	// arrays maps an array column to its base field.
	arrays map[string]string
	// scalars is the set of columns read as plain fields.
	scalars map[string]struct{}
}

func buildPlan(columns []database.ColumnInfo, fields []string) plan {
	wanted := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		wanted[f] = struct{}{}
	}

	p := plan{
		arrays:  make(map[string]string),
		scalars: make(map[string]struct{}),
	}
	for _, col := range columns {
		if m := arrayColumn.FindStringSubmatch(col.Name); m != nil {
			if _, ok := wanted[m[1]]; ok {
				p.selected = append(p.selected, col.Name)
				p.arrays[col.Name] = m[1]
			}
			continue
		}
		if _, ok := wanted[col.Name]; ok {
			p.selected = append(p.selected, col.Name)
			p.scalars[col.Name] = struct{}{}
		}
	}
	return p
}

// selectSQL builds the table query for the planned columns.
func (p plan) selectSQL(driver, table string) string {
	quoted := make([]string, len(p.selected))
	for i, name := range p.selected {
		quoted[i] = database.QuoteIdentifier(driver, name)
	}
	return "SELECT " + strings.Join(quoted, ",") + " FROM " + table
}
