package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/report"
	"github.com/verigate/verigate/internal/platform/logger"
)

// GateOpts holds per-invocation options for the gate.
type GateOpts struct {
	DryRun  bool
	JSON    bool
	Quiet   bool
	Verbose bool
	NoColor bool
}

// Gate orchestrates a full verification run with injected dependencies.
// This struct enables testing the orchestration logic without real
// infrastructure.
type Gate struct {
	// Docker checks Docker availability before any containerized check runs.
	Docker DockerChecker

	// Engine executes the configured checks in order.
	Engine GateRunner

	// LoadConfig loads the project-level checks.yaml.
	LoadConfig func(ctx context.Context, path string) (*config.Config, error)

	// ConfigPath is the path to the checks.yaml file.
	ConfigPath string

	// Stdout is the output writer for the formatted report.
	Stdout io.Writer

	// Stderr is the output writer for progress/status messages.
	Stderr io.Writer

	// StartProgress, if set, is called with the check count once the
	// configuration is loaded, before execution begins.
	StartProgress func(total int)
}

// Execute runs the gate end to end.
func (g *Gate) Execute(ctx context.Context, opts GateOpts) error {
	log := logger.FromContext(ctx)
	operation := "run"
	if opts.DryRun {
		operation = "dry-run"
	}
	log.Info("gate started", "operation", operation)

	// 1. Load project configuration. Any configuration error aborts the
	// gate before a single check runs.
	cfg, err := g.LoadConfig(ctx, g.ConfigPath)
	if err != nil {
		return err
	}

	// 2. Docker pre-flight, only when a check actually needs a container.
	if usesContainers(cfg.Checks) {
		if err := g.Docker.CheckDocker(ctx); err != nil {
			return err
		}
	}

	if len(cfg.Checks) == 0 {
		fmt.Fprintln(g.Stderr, "✅ No checks configured")
		return nil
	}

	// 3. Execute checks sequentially.
	if g.StartProgress != nil {
		g.StartProgress(len(cfg.Checks))
	}
	result, err := g.Engine.Run(ctx, cfg.Checks)
	if err != nil {
		return err
	}

	// 4. Format and print the report.
	var fmtr report.Formatter
	switch {
	case opts.Quiet:
		fmtr = report.NewQuietFormatter()
	case opts.JSON:
		fmtr = report.NewJSONFormatter()
	default:
		fmtr = report.NewCLIFormatter(!opts.NoColor, opts.Verbose)
	}
	fmt.Fprint(g.Stdout, fmtr.Format(*result))

	// 5. Determine exit code.
	if opts.DryRun {
		return nil
	}
	if !result.Passed {
		return ErrGateFailed
	}
	return nil
}

// usesContainers reports whether any configured check runs in a container.
// Defaults are already folded into each check by the config loader.
func usesContainers(checks []config.Check) bool {
	for _, c := range checks {
		// Review checks never run in a container even when one is
		// inherited from defaults.
		if c.Type != config.CheckTypeReview && c.Container != "" {
			return true
		}
	}
	return false
}
