package compare

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"db-compare/core/diff"
	"db-compare/core/provider"
	"db-compare/core/record"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc observes a run's progress through the intersection. It is called from
// worker goroutines and must be safe for concurrent use. It has no effect on results.
type ProgressFunc func(processed, total int, elapsed time.Duration)

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of diff workers. Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithProgress registers a progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// WithLogger sets the logger used for stage transitions.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Runner executes comparisons. A Runner holds no per-run state and may run several
// comparisons, sequentially or concurrently.
type Runner struct {
	logger   *zap.Logger
	workers  int
	progress ProgressFunc
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the effective number of diff workers.
func (r *Runner) Workers() int {
	if r.workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return r.workers
}

// Run compares the records of source and target described by spec.
func (r *Runner) Run(ctx context.Context, spec Spec, source, target provider.Provider) (*Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	l := r.logger.With(zap.String("comparison", spec.Name))
	l.Debug("Running comparison")

	sourceRecords, targetRecords, err := r.load(ctx, spec.Fields(), source, target)
	if err != nil {
		return nil, err
	}
	l.Debug("Records loaded",
		zap.Int("source_records", len(sourceRecords)),
		zap.Int("target_records", len(targetRecords)),
	)

	sourceIndex := record.BuildIndex(sourceRecords, spec.MatchFields)
	targetIndex := record.BuildIndex(targetRecords, spec.MatchFields)
	l.Debug("Indices built",
		zap.Int("source_keys", sourceIndex.Len()),
		zap.Int("target_keys", targetIndex.Len()),
	)

	sourceOnly := record.OnlyIn(sourceIndex, targetIndex)
	targetOnly := record.OnlyIn(targetIndex, sourceIndex)
	keys := record.IntersectionKeys(sourceIndex, targetIndex)
	l.Debug("Partitions computed",
		zap.Int("source_only", len(sourceOnly)),
		zap.Int("target_only", len(targetOnly)),
		zap.Int("intersection", len(keys)),
	)

	differ := diff.New(spec.MatchFields, spec.CompareFields)
	acc, err := r.diffAll(ctx, spec, differ, keys, sourceIndex, targetIndex, started)
	if err != nil {
		return nil, fmt.Errorf("comparison %q interrupted: %w", spec.Name, err)
	}

	patches, labels := acc.results()
	report := &Report{
		Name: spec.Name,
		Summary: Summary{
			TotalSource:       sourceIndex.Len(),
			TotalTarget:       targetIndex.Len(),
			Identical:         int(acc.identical.Load()),
			Differing:         int(acc.differing.Load()),
			SourceOnly:        len(sourceOnly),
			TargetOnly:        len(targetOnly),
			Intersection:      len(keys),
			SourceRecordsRead: sourceIndex.Read(),
			TargetRecordsRead: targetIndex.Read(),
		},
		MatchFields:        append([]string(nil), spec.MatchFields...),
		CompareFields:      append([]string(nil), spec.CompareFields...),
		Patches:            patches,
		SourceOnly:         sourceOnly,
		TargetOnly:         targetOnly,
		DifferingMatchKeys: labels,
		StartedAt:          started,
		Duration:           time.Since(started),
	}

	l.Debug("Comparison finished",
		zap.Int("identical", report.Summary.Identical),
		zap.Int("differing", report.Summary.Differing),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

// load reads both sides concurrently. Either failure aborts the run.
func (r *Runner) load(ctx context.Context, fields []string, source, target provider.Provider) ([]record.Record, []record.Record, error) {
	var sourceRecords, targetRecords []record.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := source.GetRecords(gctx, fields)
		if err != nil {
			return providerFailure("source", err)
		}
		sourceRecords = recs
		return nil
	})
	g.Go(func() error {
		recs, err := target.GetRecords(gctx, fields)
		if err != nil {
			return providerFailure("target", err)
		}
		targetRecords = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sourceRecords, targetRecords, nil
}

// providerFailure makes sure a provider error is classified as such even when the
// implementation did not wrap it.
func providerFailure(side string, err error) error {
	if !errors.Is(err, provider.ErrProvider) {
		err = fmt.Errorf("%w: %w", provider.ErrProvider, err)
	}
	return fmt.Errorf("failed to load %s records: %w", side, err)
}

// diffAll runs the differ over every intersection key on the worker pool.
func (r *Runner) diffAll(
	ctx context.Context,
	spec Spec,
	differ *diff.Differ,
	keys []record.MatchKey,
	sourceIndex, targetIndex *record.Index,
	started time.Time,
) (*accumulator, error) {
	acc := &accumulator{}
	total := len(keys)
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)

	workers := r.Workers()
	if workers > total && total > 0 {
		workers = total
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for pos := range jobs {
				key := keys[pos]
				src, _ := sourceIndex.Get(key)
				dst, _ := targetIndex.Get(key)

				patch := differ.Diff(src, dst)
				label := ""
				if patch != nil {
					label = record.Label(src, spec.MatchFields)
				}

				processed := acc.record(pos, patch, label)
				if r.progress != nil {
					r.progress(processed, total, time.Since(started))
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for pos := range keys {
			select {
			case jobs <- pos:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return acc, nil
}
