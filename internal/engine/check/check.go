// Package check defines the unified check interface and implementations for
// exec, script, and review check types.
package check

import (
	"context"

	"github.com/verigate/verigate/internal/engine/report"
)

// Check represents a single verification check that can be executed.
type Check interface {
	// Execute runs the check and returns the result.
	Execute(ctx context.Context) (*report.CheckResult, error)
}
