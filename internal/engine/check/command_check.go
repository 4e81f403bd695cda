package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/parser"
	"github.com/verigate/verigate/internal/engine/pool"
	"github.com/verigate/verigate/internal/engine/report"
	"github.com/verigate/verigate/internal/platform/logger"
)

// PoolManager abstracts container pool operations for testability.
type PoolManager interface {
	GetOrCreate(ctx context.Context, img, projectPath string, writable bool) (string, error)
}

// ContainerExecutor abstracts command execution inside containers for testability.
type ContainerExecutor interface {
	Run(ctx context.Context, containerID, command string, timeout time.Duration) (*pool.ExecResult, error)
}

// HostExecutor abstracts command execution on the host for testability.
type HostExecutor interface {
	Run(ctx context.Context, command string, timeout time.Duration) (*pool.ExecResult, error)
}

const defaultTimeout = 30 * time.Second

// CommandCheck executes a command or script and parses the output.
// When the check config names a container image, the command runs inside a
// pooled container with the project mounted at /workspace. Otherwise it runs
// directly on the host.
type CommandCheck struct {
	cfg      config.Check
	pool     PoolManager
	executor ContainerExecutor
	host     HostExecutor
	parser   parser.Parser
	project  string
	// writable marks checks whose fix commands rewrite project files.
	writable bool
}

// NewCommandCheck creates a new CommandCheck.
func NewCommandCheck(cfg config.Check, p PoolManager, exec ContainerExecutor, host HostExecutor, prs parser.Parser, projectPath string, writable bool) *CommandCheck {
	return &CommandCheck{
		cfg:      cfg,
		pool:     p,
		executor: exec,
		host:     host,
		parser:   prs,
		project:  projectPath,
		writable: writable,
	}
}

// Execute runs the command, parses the output, and returns the result.
func (c *CommandCheck) Execute(ctx context.Context) (*report.CheckResult, error) {
	log := logger.FromContext(ctx)
	log.Info("CommandCheck.Execute started", "check", c.cfg.Name, "type", c.cfg.Type)
	start := time.Now()

	result := &report.CheckResult{
		Name:     c.cfg.Name,
		Kind:     string(c.cfg.Type),
		Severity: c.cfg.GetSeverity(),
	}

	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	execResult, err := c.run(ctx, timeout)
	if err != nil {
		result.Status = report.StatusFailed
		result.SystemError = fmt.Sprintf("execution failed: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	result.RawOutput = string(execResult.Stdout)

	parsed, err := c.parser.Parse(ctx, execResult.Stdout, execResult.Stderr, execResult.ExitCode)
	if err != nil {
		result.Status = report.StatusFailed
		result.SystemError = fmt.Sprintf("parser error: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	if parsed.Passed {
		result.Status = report.StatusPassed
	} else {
		result.Status = report.StatusFailed
	}
	result.Findings = parser.EnrichHints(parsed.Findings)

	result.DurationMs = time.Since(start).Milliseconds()
	log.Info("CommandCheck.Execute completed", "check", c.cfg.Name, "status", result.Status, "duration_ms", result.DurationMs)
	return result, nil
}

// run dispatches to container or host execution.
func (c *CommandCheck) run(ctx context.Context, timeout time.Duration) (*pool.ExecResult, error) {
	command := c.buildCommand()

	if c.cfg.Container == "" {
		return c.host.Run(ctx, command, timeout)
	}

	containerID, err := c.pool.GetOrCreate(ctx, c.cfg.Container, c.project, c.writable)
	if err != nil {
		return nil, fmt.Errorf("container setup failed: %w", err)
	}
	return c.executor.Run(ctx, containerID, command, timeout)
}

// RunFix executes a remediation command in the same environment as the check.
func (c *CommandCheck) RunFix(ctx context.Context, fixCommand string, timeout time.Duration) (*pool.ExecResult, error) {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	if c.cfg.Container == "" {
		return c.host.Run(ctx, fixCommand, timeout)
	}

	// Fix commands rewrite files, so the mount must be writable.
	containerID, err := c.pool.GetOrCreate(ctx, c.cfg.Container, c.project, true)
	if err != nil {
		return nil, fmt.Errorf("container setup failed: %w", err)
	}
	return c.executor.Run(ctx, containerID, fixCommand, timeout)
}

// shellQuote wraps a string in single quotes with proper escaping.
// Single quotes within the string are escaped as '\” (end quote, escaped quote, start quote).
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// buildCommand constructs the command string based on check type.
// For "exec" checks, uses cfg.Command directly.
// For "script" checks, constructs a shell invocation of cfg.Path.
func (c *CommandCheck) buildCommand() string {
	switch c.cfg.Type {
	case config.CheckTypeScript:
		// Security: Properly shell-quote the path to prevent injection.
		// Config validation also rejects paths with single quotes for defense-in-depth.
		return "sh " + shellQuote(c.cfg.Path)
	case config.CheckTypeExec:
		return c.cfg.Command
	default:
		return c.cfg.Command
	}
}
