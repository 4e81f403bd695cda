package check

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/parser"
	"github.com/verigate/verigate/internal/engine/pool"
	"github.com/verigate/verigate/internal/engine/report"
)

// TestCommandCheck_ContainerSuccess verifies successful execution of an exec
// check inside a container.
func TestCommandCheck_ContainerSuccess(t *testing.T) {
	mockPool := &pool.MockPool{
		ContainerID: "test-container",
	}
	mockExecutor := &pool.MockExecutor{
		Result: &pool.ExecResult{
			Stdout:   []byte("all checks passed"),
			Stderr:   []byte(""),
			ExitCode: 0,
		},
	}
	mockParser := &parser.MockParser{
		Result: &parser.Result{
			Passed: true,
		},
	}

	cfg := config.Check{
		Name:      "lint",
		Type:      config.CheckTypeExec,
		Command:   "golangci-lint run ./...",
		Container: "golang:1.24",
	}

	c := NewCommandCheck(cfg, mockPool, mockExecutor, nil, mockParser, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusPassed {
		t.Errorf("expected passed, got %s", result.Status)
	}
	if result.SystemError != "" {
		t.Errorf("expected no system error, got %q", result.SystemError)
	}
	if result.DurationMs < 0 {
		t.Errorf("expected non-negative duration, got %d", result.DurationMs)
	}
}

// TestCommandCheck_HostSuccess verifies that a check without a container
// image runs through the host executor.
func TestCommandCheck_HostSuccess(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{
			Stdout:   []byte("ok"),
			ExitCode: 0,
		},
	}
	mockParser := &parser.MockParser{
		Result: &parser.Result{Passed: true},
	}

	cfg := config.Check{
		Name:    "build",
		Type:    config.CheckTypeExec,
		Command: "go build ./...",
		// No container: runs on the host.
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, mockParser, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusPassed {
		t.Errorf("expected passed, got %s", result.Status)
	}
	if mockHost.LastCommand != "go build ./..." {
		t.Errorf("expected host executor to receive the command, got %q", mockHost.LastCommand)
	}
}

// TestCommandCheck_Failure verifies a failing tool produces a failed result
// with findings, not an error.
func TestCommandCheck_Failure(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{
			Stdout:   []byte("main.go:10: undefined: frobnicate"),
			ExitCode: 1,
		},
	}
	mockParser := &parser.MockParser{
		Result: &parser.Result{
			Passed: false,
			Findings: []parser.Finding{
				{File: "main.go", Line: 10, Severity: "error", Message: "undefined: frobnicate"},
			},
		},
	}

	cfg := config.Check{
		Name:    "build",
		Type:    config.CheckTypeExec,
		Command: "go build ./...",
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, mockParser, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(result.Findings))
	}
	if result.Severity != "error" {
		t.Errorf("expected default severity 'error', got %q", result.Severity)
	}
}

// TestCommandCheck_ContainerSetupFailure verifies error handling when
// container setup fails.
func TestCommandCheck_ContainerSetupFailure(t *testing.T) {
	mockPool := &pool.MockPool{
		Err: errors.New("docker daemon not running"),
	}

	cfg := config.Check{
		Name:      "lint",
		Type:      config.CheckTypeExec,
		Command:   "go vet ./...",
		Container: "golang:1.24",
	}

	c := NewCommandCheck(cfg, mockPool, nil, nil, nil, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusFailed {
		t.Error("expected check to fail")
	}
	if !strings.Contains(result.SystemError, "container setup failed") {
		t.Errorf("expected 'container setup failed' in error, got %q", result.SystemError)
	}
}

// TestCommandCheck_ExecutionFailure verifies error handling when command
// execution fails outright.
func TestCommandCheck_ExecutionFailure(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Err: errors.New("command timeout"),
	}

	cfg := config.Check{
		Name:    "test",
		Type:    config.CheckTypeExec,
		Command: "npm test",
		Timeout: 5 * time.Second,
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, nil, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusFailed {
		t.Error("expected check to fail")
	}
	if !strings.Contains(result.SystemError, "execution failed") {
		t.Errorf("expected 'execution failed' in error, got %q", result.SystemError)
	}
}

// TestCommandCheck_ParserError verifies error handling when the parser fails.
func TestCommandCheck_ParserError(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{
			Stdout:   []byte("invalid output"),
			ExitCode: 1,
		},
	}
	mockParser := &parser.MockParser{
		Err: errors.New("failed to parse SARIF output"),
	}

	cfg := config.Check{
		Name:    "security",
		Type:    config.CheckTypeExec,
		Command: "gosec -fmt=sarif ./...",
		Parser:  "sarif",
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, mockParser, "/project", false)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != report.StatusFailed {
		t.Error("expected check to fail")
	}
	if !strings.Contains(result.SystemError, "parser error") {
		t.Errorf("expected 'parser error' in error, got %q", result.SystemError)
	}
}

// TestCommandCheck_DefaultTimeout verifies the default timeout is applied
// when not specified.
func TestCommandCheck_DefaultTimeout(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{Stdout: []byte("ok"), ExitCode: 0},
	}
	mockParser := &parser.MockParser{
		Result: &parser.Result{Passed: true},
	}

	cfg := config.Check{
		Name:    "quick",
		Type:    config.CheckTypeExec,
		Command: "echo ok",
		// No timeout specified
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, mockParser, "/project", false)
	if _, err := c.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mockHost.LastTimeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", mockHost.LastTimeout)
	}
}

// TestCommandCheck_BuildCommand verifies command construction for exec and
// script checks.
func TestCommandCheck_BuildCommand(t *testing.T) {
	tests := []struct {
		name      string
		checkType config.CheckType
		command   string
		path      string
		expected  string
	}{
		{
			name:      "exec check uses command directly",
			checkType: config.CheckTypeExec,
			command:   "go test ./...",
			expected:  "go test ./...",
		},
		{
			name:      "script check quotes path",
			checkType: config.CheckTypeScript,
			path:      "./scripts/check.sh",
			expected:  "sh './scripts/check.sh'",
		},
		{
			name:      "script check with special chars",
			checkType: config.CheckTypeScript,
			path:      "./scripts/test file.sh",
			expected:  "sh './scripts/test file.sh'",
		},
		{
			name:      "script check escapes single quotes",
			checkType: config.CheckTypeScript,
			path:      "./scripts/my'script.sh",
			expected:  `sh './scripts/my'\''script.sh'`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Check{
				Name:    "test",
				Type:    tc.checkType,
				Command: tc.command,
				Path:    tc.path,
			}

			c := NewCommandCheck(cfg, nil, nil, nil, nil, "/project", false)
			got := c.buildCommand()

			if got != tc.expected {
				t.Errorf("buildCommand() = %q, want %q", got, tc.expected)
			}
		})
	}
}

// TestCommandCheck_SeverityCarried verifies the configured severity lands on
// the result.
func TestCommandCheck_SeverityCarried(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{Stdout: []byte(""), ExitCode: 1},
	}
	mockParser := &parser.MockParser{
		Result: &parser.Result{Passed: false},
	}

	cfg := config.Check{
		Name:     "format",
		Type:     config.CheckTypeExec,
		Command:  "test -z \"$(gofmt -l .)\"",
		Severity: "warning",
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, mockParser, "/project", true)
	result, _ := c.Execute(context.Background())

	if result.Severity != "warning" {
		t.Errorf("expected severity 'warning', got %q", result.Severity)
	}
	if result.BlocksGate() {
		t.Error("warning-severity failure must not block the gate")
	}
}

// TestCommandCheck_RunFix verifies fix commands run in the check's environment.
func TestCommandCheck_RunFix(t *testing.T) {
	mockHost := &pool.MockLocalExecutor{
		Result: &pool.ExecResult{ExitCode: 0},
	}

	cfg := config.Check{
		Name:    "format",
		Type:    config.CheckTypeExec,
		Command: "test -z \"$(gofmt -l .)\"",
		Fix:     "gofmt -w .",
	}

	c := NewCommandCheck(cfg, nil, nil, mockHost, nil, "/project", true)
	res, err := c.RunFix(context.Background(), "gofmt -w .", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if mockHost.LastCommand != "gofmt -w ." {
		t.Errorf("expected fix command, got %q", mockHost.LastCommand)
	}
	if mockHost.LastTimeout != 30*time.Second {
		t.Errorf("expected default timeout for fix, got %v", mockHost.LastTimeout)
	}
}
