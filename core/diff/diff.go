package diff

import (
	"bytes"
	"encoding/json"

	"db-compare/core/record"
)

// NoteTypeMismatch marks a field whose values are of different kinds on each side.
const NoteTypeMismatch = "type mismatch"

// FieldDiff describes one differing compare field.
type FieldDiff struct {
	// Field is the compare field name.
	Field string `json:"field"`

	// Source is the value on the source side.
	Source record.Value `json:"source"`

	// Target is the value on the target side.
	Target record.Value `json:"target"`

	// Note qualifies the difference, e.g. NoteTypeMismatch. Empty for plain value changes.
	Note string `json:"note,omitempty"`
}

// Patch lists the differing compare fields of a matched pair.
// A nil *Patch means the pair has no difference.
type Patch struct {
	// Key is the match key shared by both records.
	Key record.MatchKey

	// Match holds the match-field values of the pair, in match-field order.
	Match record.Record

	// Fields holds one entry per differing compare field, in compare-field order.
	Fields []FieldDiff
}

// Field returns the entry for a compare field, if it differs.
func (p *Patch) Field(name string) (FieldDiff, bool) {
	for _, f := range p.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldDiff{}, false
}

type change struct {
	Source record.Value `json:"source"`
	Target record.Value `json:"target"`
	Note   string       `json:"note,omitempty"`
}

// MarshalJSON encodes the patch as {"key": {...match values...}, "changes": {field: {source, target[, note]}}},
// preserving field order.
func (p *Patch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	key, err := p.Match.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"key":`)
	buf.Write(key)
	buf.WriteString(`,"changes":{`)
	for i, f := range p.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(change{Source: f.Source, Target: f.Target, Note: f.Note})
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Differ compares matched record pairs. It is immutable and safe for concurrent use.
type Differ struct {
	matchFields   []string
	compareFields []string
}

// New creates a differ. Compare fields that are also match fields, and repeated compare
// fields, are dropped.
func New(matchFields, compareFields []string) *Differ {
	isMatch := make(map[string]struct{}, len(matchFields))
	for _, f := range matchFields {
		isMatch[f] = struct{}{}
	}

	seen := make(map[string]struct{}, len(compareFields))
	fields := make([]string, 0, len(compareFields))
	for _, f := range compareFields {
		if _, ok := isMatch[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}

	return &Differ{
		matchFields:   append([]string(nil), matchFields...),
		compareFields: fields,
	}
}

// CompareFields returns the fields the differ actually compares.
func (d *Differ) CompareFields() []string {
	return append([]string(nil), d.compareFields...)
}

// Diff compares source and target over the compare fields and returns nil when every
// field is equal. The caller guarantees both records share the same match key.
func (d *Differ) Diff(source, target record.Record) *Patch {
	var fields []FieldDiff
	for _, name := range d.compareFields {
		sv, tv := source.Get(name), target.Get(name)
		if record.Equal(sv, tv) {
			continue
		}
		fd := FieldDiff{Field: name, Source: sv, Target: tv}
		if !sv.IsNull() && !tv.IsNull() && sv.Kind() != tv.Kind() {
			fd.Note = NoteTypeMismatch
		}
		fields = append(fields, fd)
	}

	if len(fields) == 0 {
		return nil
	}

	return &Patch{
		Key:    record.KeyOf(source, d.matchFields),
		Match:  source.Project(d.matchFields),
		Fields: fields,
	}
}
