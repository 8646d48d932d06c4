package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"db-compare/core/utils"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the absence of a value. Unset fields are normalized to it.
	KindNull Kind = iota
	// KindString is a text value.
	KindString
	// KindNumber is an integral or floating point number.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindDate is a calendar date without time of day.
	KindDate
	// KindArray is an ordered list of scalar values.
	KindArray
)

// DateLayout is the textual form of date values in keys and reports.
const DateLayout = "2006-01-02"

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single normalized field value. The zero Value is null.
type Value struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	isInt bool
	b     bool
	date  time.Time
	items []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int returns an integral number value.
func Int(i int64) Value {
	return Value{kind: KindNumber, i: i, f: float64(i), isInt: true}
}

// Float returns a number value. Integral floats that fit in an int64 keep an integer form
// so that 1 and 1.0 render and compare identically.
func Float(f float64) Value {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !math.IsInf(f, 0) {
		if f == 0 {
			f = 0 // fold -0
		}
		return Value{kind: KindNumber, i: int64(f), f: f, isInt: true}
	}
	return Value{kind: KindNumber, f: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Date returns a date value for the calendar day of t in t's own location.
// The time of day is discarded.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Array returns an array value holding the given items in order.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// FromAny converts a native Go value into a Value.
// Unknown types are rendered to text.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Float(float64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		if t <= math.MaxInt64 {
			return Int(int64(t))
		}
		return Float(float64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i)
		}
		if f, err := t.Float64(); err == nil {
			return Float(f)
		}
		return String(t.String())
	case time.Time:
		return Date(t)
	case *time.Time:
		if t == nil {
			return Null()
		}
		return Date(*t)
	case []Value:
		return Array(t...)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Array(items...)
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = String(item)
		}
		return Array(items...)
	default:
		return String(utils.ToString(t))
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the text of a string value, or "" for other kinds.
func (v Value) Str() string {
	return v.str
}

// Number returns the numeric value as a float64 and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.f, v.kind == KindNumber
}

// Time returns the UTC midnight of a date value.
func (v Value) Time() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// Items returns a copy of the elements of an array value.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Text renders v as used in match keys and labels: "" for null, the plain text for
// strings, the shortest decimal form for numbers, YYYY-MM-DD for dates and a bracketed,
// comma separated list for arrays.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.date.Format(DateLayout)
	case KindArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Text()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

// Interface returns v as a plain Go value (nil, string, int64, float64, bool, string date,
// or []any), suitable for encoders.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return v.i
		}
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return strconv.FormatFloat(v.f, 'f', -1, 64)
		}
		return v.f
	case KindBool:
		return v.b
	case KindDate:
		return v.date.Format(DateLayout)
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as its natural JSON form. Non-finite numbers are encoded as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Equal reports whether a and b hold the same value: both null, the same scalar kind and
// value, the same calendar day, or equal-length arrays with pairwise equal elements.
// Numbers compare numerically regardless of integer or float form, and NaN equals NaN.
// An empty string is not equal to null.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		if a.isInt && b.isInt {
			return a.i == b.i
		}
		if math.IsNaN(a.f) && math.IsNaN(b.f) {
			return true
		}
		return a.f == b.f
	case KindBool:
		return a.b == b.b
	case KindDate:
		return a.date.Equal(b.date)
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
