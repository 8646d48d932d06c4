// Package compare orchestrates one comparison run between a source and a target provider.
//
// A run loads both record sets (restricted to the union of match and compare fields),
// indexes each side by match key, partitions the keys into source-only, target-only and
// matched, then diffs every matched pair on a bounded pool of workers. Counters are atomic
// and patches are gathered by an internal accumulator, so callers never deal with locks.
//
// # Guarantees
//
//   - identical + differing == intersection
//   - intersection + len(source only) == total source
//   - intersection + len(target only) == total target
//
// Totals count distinct match keys. The raw number of records read from each side is
// reported separately; a gap between the two is how key collisions show up.
//
// # Errors
//
// An invalid Spec fails with an error wrapping ErrConfiguration before any provider is
// called. A provider failure wraps provider.ErrProvider and aborts the run; no partial
// report is returned. Diff anomalies never fail a run.
//
// # Usage
//
//	runner := compare.NewRunner(compare.WithLogger(log))
//	report, err := runner.Run(ctx, compare.Spec{
//	    Name:          "customers",
//	    MatchFields:   []string{"id"},
//	    CompareFields: []string{"name", "email"},
//	}, source, target)
package compare
