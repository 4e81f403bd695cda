// Package report defines gate results and renders them for CLI, JSON, and
// quiet output.
package report

import (
	"github.com/verigate/verigate/internal/engine/parser"
)

// Status is the terminal state of a single check.
type Status string

const (
	// StatusPassed means the check ran and its tool reported no blocking issues.
	StatusPassed Status = "passed"
	// StatusFailed means the check ran and reported issues (or the tool crashed).
	StatusFailed Status = "failed"
	// StatusSkipped means the check never ran because a check it needs did not pass.
	// Skipped checks count as neither passed nor failed.
	StatusSkipped Status = "skipped"
)

// CheckResult holds the immutable outcome of a single check.
type CheckResult struct {
	Name       string           `json:"name"`
	Kind       string           `json:"kind"`
	Status     Status           `json:"status"`
	Severity   string           `json:"severity"`
	SkipReason string           `json:"skip_reason,omitempty"`
	FixApplied bool             `json:"fix_applied,omitempty"`
	DurationMs int64            `json:"duration_ms"`
	Findings   []parser.Finding `json:"findings,omitempty"`
	// SystemError records a tool crash (the check itself errored, as opposed
	// to the check finding problems). Treated as an unfixable failure.
	SystemError string `json:"system_error,omitempty"`
	// Escalation carries the plain-language question for an unfixable failure.
	Escalation string `json:"escalation,omitempty"`
	RawOutput  string `json:"raw_output,omitempty"`
}

// Failed reports whether the check ran and did not pass.
func (r *CheckResult) Failed() bool {
	return r.Status == StatusFailed
}

// BlocksGate reports whether this result alone makes the gate fail.
// Only error-severity failures block; warnings and info are reported but
// do not affect the verdict.
func (r *CheckResult) BlocksGate() bool {
	return r.Failed() && r.Severity == parser.SeverityError
}

// GateReport is the aggregated result of one gate invocation: one
// CheckResult per configured check, in execution order.
type GateReport struct {
	Passed     bool          `json:"passed"`
	DurationMs int64         `json:"duration_ms"`
	Checks     []CheckResult `json:"checks"`
}

// Questions returns the escalation questions of all unfixable failures,
// in check order.
func (g *GateReport) Questions() []string {
	var qs []string
	for _, c := range g.Checks {
		if c.Escalation != "" {
			qs = append(qs, c.Escalation)
		}
	}
	return qs
}

// Formatter renders a GateReport into a printable string.
type Formatter interface {
	Format(report GateReport) string
}
