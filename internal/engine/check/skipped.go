package check

import (
	"context"

	"github.com/verigate/verigate/internal/engine/report"
)

// skippedCheck is a no-op check producing a skipped result. The runner uses
// it when a dependency did not pass or when file filters exclude the check.
type skippedCheck struct {
	name   string
	kind   string
	reason string
}

// Ensure skippedCheck implements Check at compile time.
var _ Check = (*skippedCheck)(nil)

// NewSkippedCheck creates a check that immediately returns a skipped result
// with the given reason. Skipped checks count as neither passed nor failed.
func NewSkippedCheck(name, kind, reason string) Check {
	return &skippedCheck{name: name, kind: kind, reason: reason}
}

// Execute returns a skipped result immediately.
func (c *skippedCheck) Execute(_ context.Context) (*report.CheckResult, error) {
	return &report.CheckResult{
		Name:       c.name,
		Kind:       c.kind,
		Status:     report.StatusSkipped,
		SkipReason: c.reason,
	}, nil
}
