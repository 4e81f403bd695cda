package pool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/verigate/verigate/internal/platform/logger"
)

// LocalExecutor runs commands directly on the host for checks that have no
// container configured. It produces the same ExecResult as the container
// Executor so parsers treat both paths identically.
type LocalExecutor struct {
	// WorkDir is the working directory for commands.
	// If empty, the current directory is used.
	WorkDir string
}

// NewLocalExecutor creates a LocalExecutor rooted at the given directory.
func NewLocalExecutor(workDir string) *LocalExecutor {
	return &LocalExecutor{WorkDir: workDir}
}

// Run executes a command on the host and returns the output.
// Command is wrapped in sh -c to support shell features.
// A non-zero exit code is not an error; it is reported in the result.
func (e *LocalExecutor) Run(ctx context.Context, command string, timeout time.Duration) (*ExecResult, error) {
	log := logger.FromContext(ctx)
	log.Info("LocalExecutor.Run started", "command", command, "timeout", timeout)
	start := time.Now()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command) // #nosec G204 -- command comes from the project's own config file
	cmd.Dir = e.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		// The process was killed by the deadline, not a tool failure.
		return nil, ctx.Err()
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running command: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}

	result := &ExecResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: time.Since(start),
	}
	log.Info("LocalExecutor.Run completed", "exit_code", result.ExitCode, "duration", result.Duration)
	return result, nil
}
