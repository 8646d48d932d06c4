package compare

import (
	"sort"
	"sync"
	"sync/atomic"

	"db-compare/core/diff"
)

// positioned tags an outcome with the intersection position it came from,
// so results can be put back in a stable order after the workers join.
type positioned[T any] struct {
	pos int
	val T
}

// accumulator gathers worker outcomes. Counters are atomic; the collections are
// append-only behind a mutex that never leaves this type.
type accumulator struct {
	identical atomic.Int64
	differing atomic.Int64
	processed atomic.Int64

	mu      sync.Mutex
	patches []positioned[*diff.Patch]
	labels  []positioned[string]
}

// record stores the outcome of one pair and returns the processed count so far.
func (a *accumulator) record(pos int, patch *diff.Patch, label string) int {
	if patch == nil {
		a.identical.Add(1)
	} else {
		a.differing.Add(1)
		a.mu.Lock()
		a.patches = append(a.patches, positioned[*diff.Patch]{pos: pos, val: patch})
		if label != "" {
			a.labels = append(a.labels, positioned[string]{pos: pos, val: label})
		}
		a.mu.Unlock()
	}
	return int(a.processed.Add(1))
}

// results returns the collections in intersection order. Call only after every worker
// has returned.
func (a *accumulator) results() ([]*diff.Patch, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sort.Slice(a.patches, func(i, j int) bool { return a.patches[i].pos < a.patches[j].pos })
	sort.Slice(a.labels, func(i, j int) bool { return a.labels[i].pos < a.labels[j].pos })

	patches := make([]*diff.Patch, len(a.patches))
	for i, p := range a.patches {
		patches[i] = p.val
	}
	labels := make([]string, len(a.labels))
	for i, l := range a.labels {
		labels[i] = l.val
	}
	return patches, labels
}
