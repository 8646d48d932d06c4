package cmd

import (
	"fmt"

	"db-compare/core/compare"
	"db-compare/core/config"
	"db-compare/core/report"
	"db-compare/core/storage"
	"db-compare/feature/comparison"

	"go.uber.org/zap"
)

// serviceOptions are command-line overrides of the loaded configuration.
type serviceOptions struct {
	outputDir string
	workers   int
	upload    bool
	progress  compare.ProgressFunc
}

// newService wires the comparison service from configuration.
func newService(cfg *config.Config, comparisons []config.Comparison, l *zap.Logger, opts serviceOptions) (*comparison.Service, error) {
	workers := cfg.Compare.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	runnerOpts := []compare.Option{compare.WithWorkers(workers), compare.WithLogger(l)}
	if opts.progress != nil {
		runnerOpts = append(runnerOpts, compare.WithProgress(opts.progress))
	}
	runner := compare.NewRunner(runnerOpts...)

	outputDir := cfg.Output.Dir
	if opts.outputDir != "" {
		outputDir = opts.outputDir
	}
	svcOpts := []comparison.Option{
		comparison.WithOutputDir(outputDir),
		comparison.WithLogger(l),
	}

	if cfg.Output.Upload || opts.upload {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		uploader := report.NewUploader(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Output.Prefix)
		svcOpts = append(svcOpts, comparison.WithUploader(uploader))
		l.Info("Report upload enabled",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("prefix", cfg.Output.Prefix),
		)
	}

	l.Debug("Comparison engine configured", zap.Int("workers", runner.Workers()))
	return comparison.NewService(comparisons, runner, svcOpts...), nil
}

// selectComparisons keeps the named comparisons, in file order. No names keeps all.
func selectComparisons(all []config.Comparison, names []string) ([]config.Comparison, error) {
	if len(names) == 0 {
		return all, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = false
	}
	var out []config.Comparison
	for _, c := range all {
		if _, ok := wanted[c.Name]; ok {
			wanted[c.Name] = true
			out = append(out, c)
		}
	}
	for _, n := range names {
		if !wanted[n] {
			return nil, fmt.Errorf("%w: %s", comparison.ErrNotFound, n)
		}
	}
	return out, nil
}
