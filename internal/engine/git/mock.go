package git

import (
	"context"
)

// MockService is a test double for git.Service.
type MockService struct {
	Diffs       []FileDiff
	DiffErr     error
	Files       []string
	FilesErr    error
	HookInstErr error
	HookRemErr  error
	SnapshotRef string
	SnapshotErr error
	RestoreErr  error

	// RestoredRefs records every ref passed to Restore.
	RestoredRefs []string
}

// WorkingDiff returns the configured diffs.
func (m *MockService) WorkingDiff(_ context.Context) ([]FileDiff, error) {
	return m.Diffs, m.DiffErr
}

// ChangedFiles returns the configured file list.
func (m *MockService) ChangedFiles(_ context.Context) ([]string, error) {
	return m.Files, m.FilesErr
}

// InstallHook returns the configured error.
func (m *MockService) InstallHook(_ context.Context) error {
	return m.HookInstErr
}

// RemoveHook returns the configured error.
func (m *MockService) RemoveHook(_ context.Context) error {
	return m.HookRemErr
}

// Snapshot returns the configured snapshot reference.
func (m *MockService) Snapshot(_ context.Context) (string, error) {
	return m.SnapshotRef, m.SnapshotErr
}

// Restore records the ref and returns the configured error.
func (m *MockService) Restore(_ context.Context, ref string) error {
	m.RestoredRefs = append(m.RestoredRefs, ref)
	return m.RestoreErr
}
