package comparison

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"db-compare/core/compare"
	"db-compare/core/config"
	"db-compare/core/provider"
	"db-compare/core/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned for comparison names that are not configured.
var ErrNotFound = errors.New("comparison not found")

// Result is the outcome of one completed comparison run.
type Result struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Folder   string          `json:"folder"`
	Files    []string        `json:"files"`
	Summary  compare.Summary `json:"summary"`
	Duration time.Duration   `json:"duration_ns"`

	Report *compare.Report `json:"-"`
}

// Service runs configured comparisons.
type Service struct {
	comparisons []config.Comparison
	runner      *compare.Runner
	open        Opener
	outputDir   string
	uploader    *report.Uploader
	logger      *zap.Logger
	now         func() time.Time

	sf   singleflight.Group
	mu   sync.RWMutex
	last map[string]*Result
}

// Option configures a Service.
type Option func(*Service)

// WithOpener replaces the provider factory.
func WithOpener(open Opener) Option {
	return func(s *Service) {
		s.open = open
	}
}

// WithOutputDir sets the root folder of written reports.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.outputDir = dir
	}
}

// WithUploader archives every written report file to object storage.
func WithUploader(u *report.Uploader) Option {
	return func(s *Service) {
		s.uploader = u
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used to name output folders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service for the given comparisons.
func NewService(comparisons []config.Comparison, runner *compare.Runner, opts ...Option) *Service {
	s := &Service{
		comparisons: comparisons,
		runner:      runner,
		open:        OpenProvider,
		outputDir:   "output",
		logger:      zap.NewNop(),
		now:         time.Now,
		last:        make(map[string]*Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Comparisons returns the configured comparisons.
func (s *Service) Comparisons() []config.Comparison {
	return append([]config.Comparison(nil), s.comparisons...)
}

// Find returns the configured comparison called name.
func (s *Service) Find(name string) (config.Comparison, bool) {
	for _, c := range s.comparisons {
		if c.Name == name {
			return c, true
		}
	}
	return config.Comparison{}, false
}

// Last returns the most recent completed run of name.
func (s *Service) Last(name string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.last[name]
	return r, ok
}

// RunOne runs a single comparison into a new output folder. Concurrent calls for the same
// name share one run.
func (s *Service) RunOne(ctx context.Context, name string) (*Result, error) {
	c, ok := s.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	v, err, shared := s.sf.Do(name, func() (any, error) {
		return s.run(ctx, c, s.writer(s.now()))
	})
	if shared {
		s.logger.Debug("Joined running comparison", zap.String("comparison", name))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// RunAll runs every comparison in order into one output folder. A failing comparison does
// not stop the batch; the returned error lists every failure.
func (s *Service) RunAll(ctx context.Context) ([]*Result, error) {
	w := s.writer(s.now())
	s.logger.Info("Running comparisons",
		zap.Int("count", len(s.comparisons)),
		zap.String("folder", w.Dir()),
	)

	var results []*Result
	var errs []error
	for _, c := range s.comparisons {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("comparison %q not started: %w", c.Name, err))
			continue
		}
		res, err := s.run(ctx, c, w)
		if err != nil {
			s.logger.Error("Comparison failed", zap.String("comparison", c.Name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}

	if len(errs) > 0 {
		return results, fmt.Errorf("%d of %d comparisons failed: %w", len(errs), len(s.comparisons), errors.Join(errs...))
	}
	return results, nil
}

func (s *Service) writer(at time.Time) *report.Writer {
	opts := []report.Option{report.WithLogger(s.logger)}
	if s.uploader != nil {
		opts = append(opts, report.WithUploader(s.uploader))
	}
	return report.NewWriter(filepath.Join(s.outputDir, report.FolderName(at)), opts...)
}

// run executes one comparison with its own providers and report.
func (s *Service) run(ctx context.Context, c config.Comparison, w *report.Writer) (*Result, error) {
	l := s.logger.With(zap.String("comparison", c.Name))

	if err := c.Validate(); err != nil {
		return nil, err
	}

	source, err := s.open(ctx, c.Source)
	if err != nil {
		return nil, fmt.Errorf("comparison %q: failed to open source: %w", c.Name, err)
	}
	defer closeProvider(l, "source", source)

	target, err := s.open(ctx, c.Target)
	if err != nil {
		return nil, fmt.Errorf("comparison %q: failed to open target: %w", c.Name, err)
	}
	defer closeProvider(l, "target", target)

	rep, err := s.runner.Run(ctx, c.Spec(), source, target)
	if err != nil {
		return nil, fmt.Errorf("comparison %q: %w", c.Name, err)
	}

	files, err := w.Write(ctx, rep, report.Files{
		Summary:            c.SummaryFilename,
		Differences:        c.DifferencesFilename,
		SourceOnly:         c.SourceOnlyFilename,
		TargetOnly:         c.TargetOnlyFilename,
		DifferingMatchKeys: c.DifferencesMatchFieldsFilename,
	})
	if err != nil {
		return nil, fmt.Errorf("comparison %q: failed to write report: %w", c.Name, err)
	}

	res := &Result{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Folder:   w.Dir(),
		Files:    files,
		Summary:  rep.Summary,
		Duration: rep.Duration,
		Report:   rep,
	}

	s.mu.Lock()
	s.last[c.Name] = res
	s.mu.Unlock()

	l.Info("Comparison completed",
		zap.String("run_id", res.ID),
		zap.Int("identical", rep.Summary.Identical),
		zap.Int("differing", rep.Summary.Differing),
		zap.Int("source_only", rep.Summary.SourceOnly),
		zap.Int("target_only", rep.Summary.TargetOnly),
		zap.Duration("duration", rep.Duration),
	)
	return res, nil
}

func closeProvider(l *zap.Logger, side string, p provider.Provider) {
	if err := p.Close(); err != nil {
		l.Warn("Failed to close provider", zap.String("side", side), zap.Error(err))
	}
}
