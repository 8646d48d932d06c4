package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressPrinter renders the engine's progress as a single refreshed terminal line.
type progressPrinter struct {
	out      io.Writer
	interval time.Duration

	mu        sync.Mutex
	lastAt    time.Time
	lastCount int
}

func newProgressPrinter(out io.Writer, interval time.Duration) *progressPrinter {
	return &progressPrinter{out: out, interval: interval}
}

// Report is a compare.ProgressFunc. Updates are throttled to one per interval; the final
// update of a comparison is always printed and ends the line.
func (p *progressPrinter) Report(processed, total int, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	final := processed == total
	if processed < p.lastCount {
		// A new comparison started
		p.lastCount = 0
		p.lastAt = time.Time{}
	}
	if !final && time.Since(p.lastAt) < p.interval {
		return
	}
	p.lastAt = time.Now()
	p.lastCount = processed

	avg := float64(elapsed) / float64(time.Millisecond) / float64(processed)
	fmt.Fprintf(p.out, "\rcompared %7d of %d records. %9.5f milliseconds average per record", processed, total, avg)
	if final {
		fmt.Fprintln(p.out)
		p.lastCount = 0
		p.lastAt = time.Time{}
	}
}
