package record

// Index maps match keys to records. It is built once and only read afterwards,
// so it is safe for concurrent readers.
type Index struct {
	matchFields []string
	keys        []MatchKey
	records     map[MatchKey]Record
	read        int
}

// BuildIndex indexes records by their match key in a single pass.
// On a key collision the later record replaces the earlier one but the key keeps its
// first-seen position.
func BuildIndex(records []Record, matchFields []string) *Index {
	idx := &Index{
		matchFields: append([]string(nil), matchFields...),
		keys:        make([]MatchKey, 0, len(records)),
		records:     make(map[MatchKey]Record, len(records)),
		read:        len(records),
	}
	for _, r := range records {
		key := KeyOf(r, idx.matchFields)
		if _, exists := idx.records[key]; !exists {
			idx.keys = append(idx.keys, key)
		}
		idx.records[key] = r
	}
	return idx
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Read returns the number of records consumed while building, including the ones
// replaced by a later record with the same key.
func (idx *Index) Read() int {
	return idx.read
}

// MatchFields returns the fields the index is keyed on.
func (idx *Index) MatchFields() []string {
	return append([]string(nil), idx.matchFields...)
}

// Get returns the record stored under key.
func (idx *Index) Get(key MatchKey) (Record, bool) {
	r, ok := idx.records[key]
	return r, ok
}

// Has reports whether key is present.
func (idx *Index) Has(key MatchKey) bool {
	_, ok := idx.records[key]
	return ok
}

// Keys returns the distinct keys in first-seen order.
func (idx *Index) Keys() []MatchKey {
	return append([]MatchKey(nil), idx.keys...)
}

// Records returns the retained records in key order.
func (idx *Index) Records() []Record {
	out := make([]Record, len(idx.keys))
	for i, key := range idx.keys {
		out[i] = idx.records[key]
	}
	return out
}

// OnlyIn returns the records of a whose key has no entry in b, in a's key order.
func OnlyIn(a, b *Index) []Record {
	out := make([]Record, 0)
	for _, key := range a.keys {
		if !b.Has(key) {
			out = append(out, a.records[key])
		}
	}
	return out
}

// IntersectionKeys returns the keys present in both a and b, in a's key order.
func IntersectionKeys(a, b *Index) []MatchKey {
	out := make([]MatchKey, 0)
	for _, key := range a.keys {
		if b.Has(key) {
			out = append(out, key)
		}
	}
	return out
}
