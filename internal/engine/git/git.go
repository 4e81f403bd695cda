// Package git abstracts git operations for testability.
package git

import (
	"context"
)

// FileDiff holds a per-file diff of uncommitted changes.
type FileDiff struct {
	Path    string
	Content string
}

// Service abstracts git operations for testability.
type Service interface {
	// WorkingDiff returns per-file diffs of uncommitted changes against HEAD.
	WorkingDiff(ctx context.Context) ([]FileDiff, error)
	// ChangedFiles returns the paths of files changed since HEAD,
	// including untracked files.
	ChangedFiles(ctx context.Context) ([]string, error)

	// InstallHook creates a pre-commit hook script in .git/hooks/.
	InstallHook(ctx context.Context) error
	// RemoveHook removes the verigate pre-commit hook.
	RemoveHook(ctx context.Context) error

	// Snapshot records the current working tree state and returns a
	// reference that Restore accepts.
	Snapshot(ctx context.Context) (string, error)
	// Restore reverts tracked files to the state captured by Snapshot.
	Restore(ctx context.Context, ref string) error
}
