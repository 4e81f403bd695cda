package report

import (
	"fmt"
	"strings"

	"github.com/verigate/verigate/internal/engine/parser"
)

// ANSI color codes.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiDim    = "\033[2m"
)

// CLIFormatter renders a GateReport as a human-readable multi-line report
// with [PASS]/[FAIL]/[WARN]/[SKIP] prefixed lines.
type CLIFormatter struct {
	Color   bool
	Verbose bool
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color, verbose bool) *CLIFormatter {
	return &CLIFormatter{Color: color, Verbose: verbose}
}

// Format returns the formatted report.
func (f *CLIFormatter) Format(report GateReport) string {
	var b strings.Builder

	for _, c := range report.Checks {
		prefix := f.checkPrefix(c)
		duration := ""
		if c.Status != StatusSkipped {
			duration = f.colorize(fmt.Sprintf("  %dms", c.DurationMs), ansiDim)
		}

		b.WriteString(fmt.Sprintf("%s %s%s\n", prefix, f.colorize(c.Name, ansiBold), duration))

		if c.Status == StatusSkipped && c.SkipReason != "" {
			b.WriteString(fmt.Sprintf("       %s\n", f.colorize(c.SkipReason, ansiDim)))
		}
		if c.FixApplied && c.Status == StatusPassed {
			b.WriteString(fmt.Sprintf("       %s\n", f.colorize("fixed automatically", ansiDim)))
		}
		if c.SystemError != "" {
			b.WriteString(fmt.Sprintf("       %s\n", f.colorize(c.SystemError, ansiRed)))
		}

		for _, finding := range c.Findings {
			f.writeFinding(&b, finding)
		}

		if c.Escalation != "" {
			b.WriteString(fmt.Sprintf("       ❓ %s\n", c.Escalation))
		}

		if f.Verbose && c.RawOutput != "" {
			b.WriteString(fmt.Sprintf("\n       %s\n", f.colorize("--- raw output ---", ansiDim)))
			for _, line := range strings.Split(c.RawOutput, "\n") {
				b.WriteString(fmt.Sprintf("       %s\n", f.colorize(line, ansiDim)))
			}
		}
	}

	// Verdict line.
	if report.Passed {
		b.WriteString(fmt.Sprintf("\n%s gate passed in %dms\n",
			f.colorize("✅", ansiGreen), report.DurationMs))
	} else {
		b.WriteString(fmt.Sprintf("\n%s gate failed in %dms\n",
			f.colorize("❌", ansiRed), report.DurationMs))
	}

	return b.String()
}

func (f *CLIFormatter) writeFinding(b *strings.Builder, finding parser.Finding) {
	loc := ""
	if finding.File != "" {
		loc = finding.File
		if finding.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, finding.Line)
			if finding.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, finding.Column)
			}
		}
		loc = f.colorize(loc, ansiCyan) + " "
	}

	sevColor := ansiDim
	switch finding.Severity {
	case parser.SeverityError:
		sevColor = ansiRed
	case parser.SeverityWarning:
		sevColor = ansiYellow
	}

	rule := ""
	if finding.Rule != "" {
		rule = f.colorize("["+finding.Rule+"]", ansiDim) + " "
	}

	b.WriteString(fmt.Sprintf("       %s%s%s\n", loc, rule, f.colorize(finding.Message, sevColor)))

	if finding.Hint != "" {
		b.WriteString(fmt.Sprintf("         💡 %s\n", finding.Hint))
	}
}

// checkPrefix maps a result to its report line prefix.
// Failed warning-severity checks render as [WARN] — reported, not blocking.
func (f *CLIFormatter) checkPrefix(c CheckResult) string {
	switch {
	case c.Status == StatusSkipped:
		return f.colorize("[SKIP]", ansiDim)
	case c.Status == StatusPassed:
		return f.colorize("[PASS]", ansiGreen)
	case c.Severity == parser.SeverityError:
		return f.colorize("[FAIL]", ansiRed)
	default:
		return f.colorize("[WARN]", ansiYellow)
	}
}

func (f *CLIFormatter) colorize(s, code string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}
