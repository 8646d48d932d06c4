package record

import (
	"bytes"
	"encoding/json"
)

// Field is a single named value, used to construct records.
type Field struct {
	Name  string
	Value Value
}

// Pair builds a Field from a native Go value via FromAny.
func Pair(name string, v any) Field {
	return Field{Name: name, Value: FromAny(v)}
}

// Record is an ordered mapping from field name to Value.
// Records are built by providers and treated as read-only afterwards.
type Record struct {
	fields []string
	values map[string]Value
}

// New creates a record holding the given fields in order.
// A repeated name keeps its first position and its last value.
func New(fields ...Field) Record {
	r := Record{
		fields: make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns a value to a field, appending the field if it is new.
func (r *Record) Set(name string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[name]; !ok {
		r.fields = append(r.fields, name)
	}
	r.values[name] = v
}

// Get returns the value of a field. Absent fields yield null.
func (r Record) Get(name string) Value {
	return r.values[name]
}

// Has reports whether the field is present in the record.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields returns the field names in insertion order.
func (r Record) Fields() []string {
	cp := make([]string, len(r.fields))
	copy(cp, r.fields)
	return cp
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Project returns a new record holding exactly the given fields in the given order.
// Fields missing from r are set to null.
func (r Record) Project(fields []string) Record {
	out := Record{
		fields: make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, name := range fields {
		out.Set(name, r.Get(name))
	}
	return out
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
