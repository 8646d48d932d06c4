package relational

import (
	"strconv"
	"strings"
	"time"

	"db-compare/core/database"
	"db-compare/core/record"
	"db-compare/core/utils"
)

// normalize converts a scanned driver value using the column's declared type.
// nullEmpty turns empty strings in character columns into null.
func normalize(col database.ColumnInfo, raw any, nullEmpty bool) record.Value {
	switch v := raw.(type) {
	case nil:
		return record.Null()
	case []byte:
		return normalizeText(col, string(v), nullEmpty)
	case string:
		return normalizeText(col, v, nullEmpty)
	case time.Time:
		return record.Date(v)
	default:
		return record.FromAny(v)
	}
}

func normalizeText(col database.ColumnInfo, s string, nullEmpty bool) record.Value {
	switch {
	case col.IsNumeric():
		if n, ok := parseNumber(s); ok {
			return n
		}
	case col.IsDate():
		if t, ok := utils.ToTime(s); ok {
			return record.Date(t)
		}
	case nullEmpty && s == "" && col.IsText():
		return record.Null()
	}
	return record.String(s)
}

// parseNumber keeps integers exact and falls back to float64.
func parseNumber(s string) (record.Value, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return record.Int(i), true
	}
	if f, ok := utils.ToFloat64(s); ok {
		return record.Float(f), true
	}
	return record.Value{}, false
}
