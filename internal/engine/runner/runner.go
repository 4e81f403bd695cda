// Package runner provides the sequential execution engine for running checks.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/verigate/verigate/internal/engine/check"
	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/fix"
	"github.com/verigate/verigate/internal/engine/git"
	"github.com/verigate/verigate/internal/engine/pool"
	"github.com/verigate/verigate/internal/engine/report"
	"github.com/verigate/verigate/internal/platform/logger"
)

// CheckBuilder builds executable checks from config entries.
type CheckBuilder interface {
	Create(cfg config.Check) (check.Check, error)
}

// FixRunner is implemented by checks that can run a remediation command in
// their own execution environment.
type FixRunner interface {
	RunFix(ctx context.Context, command string, timeout time.Duration) (*pool.ExecResult, error)
}

// Engine runs checks strictly in the order they are configured. Checks are
// order-dependent (a test run is meaningless against code that does not
// build), so there is no parallelism: one check at a time, each seeing the
// results of everything before it.
type Engine struct {
	factory CheckBuilder
	gitSvc  git.Service
	autoFix bool

	// Progress is an optional progress tracker. If nil, no progress output is produced.
	Progress *Progress

	// Skip lists check names disabled for this run. Skipped checks still
	// appear in the report so dependents see them as skipped, not failed.
	Skip []string

	// SkipReview disables every review check for this run.
	SkipReview bool
}

// NewEngine creates a new execution engine.
// autoFix enables the single bounded remediation attempt for failing checks.
func NewEngine(factory CheckBuilder, gitSvc git.Service, autoFix bool) *Engine {
	return &Engine{
		factory: factory,
		gitSvc:  gitSvc,
		autoFix: autoFix,
	}
}

// Run executes all checks sequentially and aggregates the results.
//
// Every configured check gets exactly one CheckResult, in config order. A
// check whose dependencies did not pass is skipped, never run. The gate
// passes only if no error-severity check failed.
//
// Any configuration problem (unknown check type, missing LLM credentials)
// aborts the run before the first check executes.
func (e *Engine) Run(ctx context.Context, checks []config.Check) (*report.GateReport, error) {
	log := logger.FromContext(ctx)
	log.Info("Engine.Run started", "checks", len(checks), "auto_fix", e.autoFix)
	start := time.Now()

	// Build every check up front so configuration errors surface before
	// anything runs.
	built := make([]check.Check, len(checks))
	for i, cfg := range checks {
		c, err := e.factory.Create(cfg)
		if err != nil {
			return nil, fmt.Errorf("configuring check %q: %w", cfg.Name, err)
		}
		built[i] = c
	}

	changed, err := e.gitSvc.ChangedFiles(ctx)
	if err != nil {
		// File filters degrade gracefully: without the change list every
		// check runs.
		log.Warn("could not determine changed files, running all checks", "error", err)
		changed = nil
	}

	statuses := make(map[string]report.Status, len(checks))
	gateReport := &report.GateReport{Passed: true}

	for i, cfg := range checks {
		if e.Progress != nil {
			e.Progress.OnStart(cfg.Name)
		}

		var result *report.CheckResult
		if reason := e.flagSkipReason(cfg); reason != "" {
			result = &report.CheckResult{
				Name:       cfg.Name,
				Kind:       string(cfg.Type),
				Status:     report.StatusSkipped,
				SkipReason: reason,
			}
		} else if reason := skipReason(cfg, statuses); reason != "" {
			result = &report.CheckResult{
				Name:       cfg.Name,
				Kind:       string(cfg.Type),
				Status:     report.StatusSkipped,
				SkipReason: reason,
			}
		} else if len(changed) > 0 && !check.ShouldRun(cfg, changed) {
			result = &report.CheckResult{
				Name:       cfg.Name,
				Kind:       string(cfg.Type),
				Status:     report.StatusSkipped,
				SkipReason: "skipped: no changed files match its file filters",
			}
		} else {
			result = e.execute(ctx, cfg, built[i])
		}

		statuses[cfg.Name] = result.Status
		if result.BlocksGate() {
			gateReport.Passed = false
		}
		gateReport.Checks = append(gateReport.Checks, *result)

		if e.Progress != nil {
			e.Progress.OnComplete(result)
		}
	}

	gateReport.DurationMs = time.Since(start).Milliseconds()

	if e.Progress != nil {
		e.Progress.Finish()
	}

	log.Info("Engine.Run completed",
		"passed", gateReport.Passed,
		"duration_ms", gateReport.DurationMs,
		"checks_run", len(gateReport.Checks),
	)
	return gateReport, nil
}

// execute runs a single check, attempting one automatic fix on failure.
func (e *Engine) execute(ctx context.Context, cfg config.Check, c check.Check) *report.CheckResult {
	log := logger.FromContext(ctx)

	result, err := c.Execute(ctx)
	if err != nil {
		// Execute contracts report tool failures in the result; an error here
		// is an engine-level defect, surfaced as a system error.
		result = &report.CheckResult{
			Name:        cfg.Name,
			Kind:        string(cfg.Type),
			Status:      report.StatusFailed,
			Severity:    cfg.GetSeverity(),
			SystemError: err.Error(),
		}
	}

	if !result.Failed() {
		return result
	}

	if result.SystemError == "" && e.autoFix {
		if fixed := e.tryFix(ctx, cfg, c, result); fixed != nil {
			result = fixed
		}
	}

	// Whatever is still failing at error severity cannot be fixed here:
	// turn it into a question for the caller.
	if result.BlocksGate() {
		result.Escalation = report.BuildQuestion(*result)
		log.Info("check escalated", "check", cfg.Name, "question", result.Escalation)
	}

	return result
}

// tryFix makes exactly one remediation attempt: snapshot the tree, run the
// fix command, and re-run the failed check. On success the repaired tree is
// kept. On failure the tree is restored so repeated runs of the gate keep
// producing the same report.
//
// Returns the result to use in place of the original, or nil if no fix was
// attempted.
func (e *Engine) tryFix(ctx context.Context, cfg config.Check, c check.Check, failed *report.CheckResult) *report.CheckResult {
	log := logger.FromContext(ctx)

	f, ok := fix.Resolve(cfg)
	if !ok {
		return nil
	}
	fr, ok := c.(FixRunner)
	if !ok {
		return nil
	}

	ref, err := e.gitSvc.Snapshot(ctx)
	if err != nil {
		log.Warn("cannot snapshot working tree, skipping auto-fix", "check", cfg.Name, "error", err)
		return nil
	}

	log.Info("attempting automatic fix", "check", cfg.Name, "command", f.Command, "source", f.Source)
	fixRes, err := fr.RunFix(ctx, f.Command, cfg.Timeout)
	if err != nil || fixRes.ExitCode != 0 {
		log.Warn("fix command failed", "check", cfg.Name, "error", err)
		e.restore(ctx, cfg.Name, ref)
		failed.FixApplied = true
		return failed
	}

	retry, err := c.Execute(ctx)
	if err != nil || retry.Failed() {
		log.Info("check still failing after fix, restoring tree", "check", cfg.Name)
		e.restore(ctx, cfg.Name, ref)
		failed.FixApplied = true
		return failed
	}

	retry.FixApplied = true
	log.Info("check fixed automatically", "check", cfg.Name)
	return retry
}

func (e *Engine) restore(ctx context.Context, name, ref string) {
	if err := e.gitSvc.Restore(ctx, ref); err != nil {
		logger.FromContext(ctx).Error("failed to restore working tree after fix attempt",
			"check", name,
			"ref", ref,
			"error", err,
		)
	}
}

// flagSkipReason returns a skip reason when the check was disabled on the
// command line, or "" otherwise.
func (e *Engine) flagSkipReason(cfg config.Check) string {
	for _, name := range e.Skip {
		if name == cfg.Name {
			return "skipped: disabled with --skip"
		}
	}
	if e.SkipReview && cfg.Type == config.CheckTypeReview {
		return "skipped: review checks disabled with --skip-review"
	}
	return ""
}

// skipReason returns a human-readable skip reason if any dependency of the
// check did not pass, or "" if the check may run. Dependency statuses are
// always present: config validation guarantees needs reference earlier
// checks, and the engine records a status for every check it visits.
func skipReason(cfg config.Check, statuses map[string]report.Status) string {
	for _, dep := range cfg.Needs {
		switch statuses[dep] {
		case report.StatusPassed:
			continue
		case report.StatusSkipped:
			return fmt.Sprintf("skipped: needs %s, which was skipped", dep)
		default:
			return fmt.Sprintf("skipped: needs %s, which failed", dep)
		}
	}
	return ""
}
