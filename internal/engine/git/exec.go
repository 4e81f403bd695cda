package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/verigate/verigate/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct {
	// WorkDir is the working directory for git commands.
	// If empty, the current directory is used.
	WorkDir string
}

// NewExecService creates a new ExecService with the given working directory.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// WorkingDiff returns per-file diffs of uncommitted changes against HEAD.
func (s *ExecService) WorkingDiff(ctx context.Context) ([]FileDiff, error) {
	logger.FromContext(ctx).Debug("getting working tree diffs")

	out, err := s.runGit(ctx, "diff", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("getting working diff: %w", err)
	}

	return SplitDiffs(out), nil
}

// ChangedFiles returns the paths of files changed since HEAD, plus untracked files.
func (s *ExecService) ChangedFiles(ctx context.Context) ([]string, error) {
	logger.FromContext(ctx).Debug("getting changed file list")

	out, err := s.runGit(ctx, "diff", "HEAD", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("getting changed files: %w", err)
	}

	untracked, err := s.runGit(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("getting untracked files: %w", err)
	}

	var files []string
	for _, chunk := range []string{out, untracked} {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		files = append(files, strings.Split(chunk, "\n")...)
	}

	return files, nil
}

// runGit executes a git command and returns the combined stdout.
func (s *ExecService) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are controlled by the application, not user input
	cmd.Dir = s.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}
