package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"db-compare/core/compare"

	"go.uber.org/zap"
)

// FolderLayout names output folders, e.g. "2024-05-01 0230 PM".
const FolderLayout = "2006-01-02 0304 PM"

// FolderName returns the output folder name for a batch started at t.
func FolderName(t time.Time) string {
	return t.Format(FolderLayout)
}

// Files names the files of one comparison. Empty names are not written.
type Files struct {
	Summary            string
	Differences        string
	SourceOnly         string
	TargetOnly         string
	DifferingMatchKeys string
}

// Writer writes reports into a single output folder.
type Writer struct {
	dir      string
	logger   *zap.Logger
	uploader *Uploader
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger that receives summary lines.
func WithLogger(l *zap.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithUploader copies every written file to object storage.
func WithUploader(u *Uploader) Option {
	return func(w *Writer) {
		w.uploader = u
	}
}

// NewWriter creates a writer for dir. The folder is created on first write.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output folder.
func (w *Writer) Dir() string {
	return w.dir
}

// Write stores rep under the given file names and returns the paths written.
func (w *Writer) Write(ctx context.Context, rep *compare.Report, files Files) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	var written []string
	outputs := []struct {
		name  string
		items any
		count int
	}{
		{files.Differences, rep.Patches, len(rep.Patches)},
		{files.SourceOnly, rep.SourceOnly, len(rep.SourceOnly)},
		{files.TargetOnly, rep.TargetOnly, len(rep.TargetOnly)},
		{files.DifferingMatchKeys, rep.DifferingMatchKeys, len(rep.DifferingMatchKeys)},
	}
	for _, out := range outputs {
		if out.name == "" || out.count == 0 {
			continue
		}
		data, err := json.MarshalIndent(out.items, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", out.name, err)
		}
		path, err := w.writeFile(ctx, out.name, append(data, '\n'), "application/json")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if files.Summary != "" {
		path, err := w.writeFile(ctx, files.Summary, []byte(w.summary(rep)), "text/plain")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func (w *Writer) writeFile(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if w.uploader != nil {
		if err := w.uploader.Upload(ctx, filepath.Base(w.dir), name, data, contentType); err != nil {
			return "", err
		}
	}
	return path, nil
}

// summary renders the summary file, logging each statistic line.
func (w *Writer) summary(rep *compare.Report) string {
	var buf bytes.Buffer
	buf.WriteString(rep.Name + "\n")
	buf.WriteString(strings.Repeat("=", len(rep.Name)) + "\n")

	l := w.logger.With(zap.String("comparison", rep.Name))
	for _, line := range SummaryLines(rep) {
		buf.WriteString(line + "\n")
		l.Info(line)
	}
	return buf.String()
}

// SummaryLines returns the statistic lines of the summary file.
func SummaryLines(rep *compare.Report) []string {
	s := rep.Summary
	return []string{
		fmt.Sprintf("%d total source records", s.TotalSource),
		fmt.Sprintf("%d total target records", s.TotalTarget),
		fmt.Sprintf("%d identical documents", s.Identical),
		fmt.Sprintf("%d differing documents", s.Differing),
		fmt.Sprintf("%d documents with no target match", s.SourceOnly),
		fmt.Sprintf("%d documents with no source match", s.TargetOnly),
		fmt.Sprintf("%d documents in both source and target", s.Intersection),
		"Match fields: " + strings.Join(rep.MatchFields, ", "),
		"Compare fields: " + strings.Join(rep.CompareFields, ", "),
	}
}
