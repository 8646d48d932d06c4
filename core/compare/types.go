package compare

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"db-compare/core/diff"
	"db-compare/core/record"
)

// ErrConfiguration is wrapped by every error caused by an invalid comparison descriptor.
var ErrConfiguration = errors.New("invalid comparison configuration")

// Spec is the immutable description of one comparison.
type Spec struct {
	// Name labels the comparison in logs and reports.
	Name string

	// MatchFields jointly identify an entity on both sides. Order matters.
	MatchFields []string

	// CompareFields are checked for equality once two records are matched.
	CompareFields []string
}

// Validate checks that the spec can drive a run.
func (s Spec) Validate() error {
	if len(s.MatchFields) == 0 {
		return fmt.Errorf("%w: comparison %q has no match fields", ErrConfiguration, s.Name)
	}
	seen := make(map[string]struct{}, len(s.MatchFields))
	for _, f := range s.MatchFields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: comparison %q has a blank match field", ErrConfiguration, s.Name)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: comparison %q repeats match field %q", ErrConfiguration, s.Name, f)
		}
		seen[f] = struct{}{}
	}
	for _, f := range s.CompareFields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: comparison %q has a blank compare field", ErrConfiguration, s.Name)
		}
	}
	return nil
}

// Fields returns the union of match and compare fields: match fields first, then compare
// fields not already listed.
func (s Spec) Fields() []string {
	seen := make(map[string]struct{}, len(s.MatchFields)+len(s.CompareFields))
	out := make([]string, 0, len(s.MatchFields)+len(s.CompareFields))
	for _, group := range [][]string{s.MatchFields, s.CompareFields} {
		for _, f := range group {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// TotalSource is the number of distinct match keys on the source side.
	TotalSource int `json:"total_source"`

	// TotalTarget is the number of distinct match keys on the target side.
	TotalTarget int `json:"total_target"`

	// Identical counts matched pairs with no difference.
	Identical int `json:"identical"`

	// Differing counts matched pairs with at least one differing compare field.
	Differing int `json:"differing"`

	// SourceOnly counts source keys with no target match.
	SourceOnly int `json:"source_only"`

	// TargetOnly counts target keys with no source match.
	TargetOnly int `json:"target_only"`

	// Intersection counts keys present on both sides.
	Intersection int `json:"intersection"`

	// SourceRecordsRead is the raw number of records the source provider returned.
	SourceRecordsRead int `json:"source_records_read"`

	// TargetRecordsRead is the raw number of records the target provider returned.
	TargetRecordsRead int `json:"target_records_read"`
}

// Report is the output of one run. It is not modified after Run returns.
type Report struct {
	// Name is the comparison name.
	Name string `json:"name"`

	// Summary holds the counts.
	Summary Summary `json:"summary"`

	// MatchFields are the fields records were matched on.
	MatchFields []string `json:"match_fields"`

	// CompareFields are the fields that were compared.
	CompareFields []string `json:"compare_fields"`

	// Patches holds one patch per differing pair.
	Patches []*diff.Patch `json:"-"`

	// SourceOnly holds the source records with no target match.
	SourceOnly []record.Record `json:"-"`

	// TargetOnly holds the target records with no source match.
	TargetOnly []record.Record `json:"-"`

	// DifferingMatchKeys holds the comma-joined match values of differing pairs.
	// Pairs whose match values are all empty are left out.
	DifferingMatchKeys []string `json:"-"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}
