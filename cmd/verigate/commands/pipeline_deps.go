package commands

import (
	"context"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/report"
)

// DockerChecker abstracts Docker pre-flight checks.
type DockerChecker interface {
	CheckDocker(ctx context.Context) error
}

// GateRunner abstracts sequential execution of the configured checks.
type GateRunner interface {
	Run(ctx context.Context, checks []config.Check) (*report.GateReport, error)
}
