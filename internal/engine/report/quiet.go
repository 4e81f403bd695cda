package report

import (
	"strings"
)

// QuietFormatter implements the hidden-pipeline presentation: the caller sees
// only the verdict, plus one plain-language question per unfixable failure.
// Process detail, findings, and durations are suppressed entirely.
type QuietFormatter struct{}

// NewQuietFormatter creates a new QuietFormatter.
func NewQuietFormatter() *QuietFormatter {
	return &QuietFormatter{}
}

// Format returns "✅" on success, or "❌" followed by escalation questions.
func (f *QuietFormatter) Format(report GateReport) string {
	if report.Passed {
		return "✅\n"
	}

	var b strings.Builder
	b.WriteString("❌\n")
	for _, q := range report.Questions() {
		b.WriteString(q)
		b.WriteString("\n")
	}
	return b.String()
}
