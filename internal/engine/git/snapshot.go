package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/verigate/verigate/internal/platform/logger"
)

// cleanTreeRef marks a snapshot of a working tree with no uncommitted changes.
const cleanTreeRef = "HEAD"

// Snapshot records the current working tree state before a fix command runs.
// It uses `git stash create`, which writes a stash commit without touching
// the working tree or the stash list. If the tree is clean relative to HEAD,
// the returned reference is HEAD itself.
func (s *ExecService) Snapshot(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("snapshotting working tree")

	out, err := s.runGit(ctx, "stash", "create")
	if err != nil {
		return "", fmt.Errorf("creating snapshot: %w", err)
	}

	ref := strings.TrimSpace(out)
	if ref == "" {
		// Nothing to stash, the tree matches HEAD.
		log.Debug("working tree clean, snapshot is HEAD")
		return cleanTreeRef, nil
	}

	log.Debug("snapshot created", "ref", ref)
	return ref, nil
}

// Restore reverts tracked files to the state captured by Snapshot.
// Untracked files created after the snapshot are left in place.
func (s *ExecService) Restore(ctx context.Context, ref string) error {
	log := logger.FromContext(ctx)
	log.Debug("restoring working tree", "ref", ref)

	if ref == "" {
		return fmt.Errorf("restore: empty snapshot reference")
	}

	if _, err := s.runGit(ctx, "checkout", ref, "--", "."); err != nil {
		return fmt.Errorf("restoring snapshot %s: %w", ref, err)
	}

	log.Debug("working tree restored")
	return nil
}
