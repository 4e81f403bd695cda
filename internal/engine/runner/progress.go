package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/verigate/verigate/internal/engine/report"
)

// Progress renders check execution status to an io.Writer (typically stderr).
// Output is suppressed in JSON and quiet modes to keep stdout machine-readable.
type Progress struct {
	w          io.Writer
	suppressed bool
	total      int
	results    []report.CheckResult
}

// NewProgress creates a new progress tracker writing to w.
// If suppressed is true, no output is produced.
func NewProgress(w io.Writer, suppressed bool, totalChecks int) *Progress {
	p := &Progress{
		w:          w,
		suppressed: suppressed,
		total:      totalChecks,
	}

	if !suppressed && totalChecks > 0 {
		fmt.Fprintf(w, "⏳ Running %d check(s)...\n", totalChecks)
	}

	return p
}

// OnStart is called when a check begins execution.
func (p *Progress) OnStart(name string) {
	if p.suppressed {
		return
	}

	fmt.Fprintf(p.w, "  ⏳ %s\n", name)
}

// OnComplete is called when a check finishes (or is skipped).
func (p *Progress) OnComplete(result *report.CheckResult) {
	if p.suppressed {
		return
	}

	p.results = append(p.results, *result)

	var icon string
	switch {
	case result.Status == report.StatusSkipped:
		icon = "⏭️"
	case result.SystemError != "":
		icon = "💥"
	case result.Failed():
		icon = "❌"
	default:
		icon = "✅"
	}

	durStr := formatDuration(time.Duration(result.DurationMs) * time.Millisecond)
	fmt.Fprintf(p.w, "  %s %s  %s\n", icon, result.Name, durStr)
}

// Finish prints a summary line after all checks complete.
func (p *Progress) Finish() {
	if p.suppressed {
		return
	}

	passed := 0
	failed := 0
	skipped := 0
	errors := 0
	for _, r := range p.results {
		switch {
		case r.Status == report.StatusSkipped:
			skipped++
		case r.SystemError != "":
			errors++
		case r.Failed():
			failed++
		default:
			passed++
		}
	}

	fmt.Fprintf(p.w, "\n")
	if failed == 0 && errors == 0 && skipped == 0 {
		fmt.Fprintf(p.w, "✅ All %d check(s) passed\n", passed)
	} else {
		fmt.Fprintf(p.w, "Results: %d passed, %d failed, %d skipped, %d errors\n", passed, failed, skipped, errors)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
