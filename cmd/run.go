package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"db-compare/core/config"
	"db-compare/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runOutputDir string
	runWorkers   int
	runUpload    bool
	runOnly      []string
	runQuiet     bool
)

// runCmd runs every comparison of a comparisons file.
var runCmd = &cobra.Command{
	Use:   "run <comparisons-file>",
	Short: "Run the comparisons described in a file",
	Long: `Loads the comparisons file (JSON, YAML or TOML), compares source and target of each
comparison and writes the reports into a timestamped folder below the output directory.

A failing comparison is logged and the remaining ones still run.

Examples:
  # Run every comparison
  db-compare run comparisons.json

  # Run two of them with 8 workers and upload the reports
  db-compare run comparisons.json --only customers --only orders --workers 8 --upload`,
	Args: cobra.ExactArgs(1),
	RunE: runComparisons,
}

func init() {
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "", "Output root directory (overrides OUTPUT_DIR)")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "Diff workers (overrides COMPARE_WORKERS, 0 = one per CPU)")
	runCmd.Flags().BoolVar(&runUpload, "upload", false, "Upload reports to object storage")
	runCmd.Flags().StringSliceVar(&runOnly, "only", nil, "Run only the named comparisons")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print progress")

	RootCmd.AddCommand(runCmd)
}

func runComparisons(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	file, err := config.LoadComparisons(args[0])
	if err != nil {
		return err
	}
	comparisons, err := selectComparisons(file.Comparisons, runOnly)
	if err != nil {
		return err
	}

	opts := serviceOptions{outputDir: runOutputDir, workers: runWorkers, upload: runUpload}
	if !runQuiet {
		opts.progress = newProgressPrinter(os.Stderr, 100*time.Millisecond).Report
	}
	svc, err := newService(cfg, comparisons, l, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := svc.RunAll(ctx)
	for _, res := range results {
		l.Info("Report written",
			zap.String("comparison", res.Name),
			zap.String("folder", res.Folder),
			zap.Int("files", len(res.Files)),
		)
	}
	if err != nil {
		return err
	}

	l.Info("Done.")
	return nil
}
