package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/report"
)

// --- Mock implementations ---

type mockDockerChecker struct {
	err    error
	called bool
}

func (m *mockDockerChecker) CheckDocker(_ context.Context) error {
	m.called = true
	return m.err
}

type mockGateRunner struct {
	result *report.GateReport
	err    error
	checks []config.Check
}

func (m *mockGateRunner) Run(_ context.Context, checks []config.Check) (*report.GateReport, error) {
	m.checks = checks
	return m.result, m.err
}

// --- Helpers ---

func defaultConfig() *config.Config {
	return &config.Config{
		Version: 1,
		Checks: []config.Check{
			{Name: "lint", Type: config.CheckTypeExec, Container: "golangci/golangci-lint", Command: "golangci-lint run"},
		},
	}
}

func passingReport() *report.GateReport {
	return &report.GateReport{
		Passed:     true,
		DurationMs: 100,
		Checks: []report.CheckResult{
			{Name: "lint", Kind: "exec", Status: report.StatusPassed, Severity: "error"},
		},
	}
}

func failingReport() *report.GateReport {
	return &report.GateReport{
		Passed:     false,
		DurationMs: 200,
		Checks: []report.CheckResult{
			{Name: "lint", Kind: "exec", Status: report.StatusFailed, Severity: "error", Escalation: "The lint check found problems it could not fix. Could you take a look?"},
		},
	}
}

func newTestGate() (*Gate, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	return &Gate{
		Docker: &mockDockerChecker{},
		Engine: &mockGateRunner{result: passingReport()},
		LoadConfig: func(_ context.Context, _ string) (*config.Config, error) {
			return defaultConfig(), nil
		},
		ConfigPath: "/fake/checks.yaml",
		Stdout:     stdout,
		Stderr:     stderr,
	}, stdout, stderr
}

// --- Tests ---

func TestGate_AllChecksPass(t *testing.T) {
	g, stdout, _ := newTestGate()

	err := g.Execute(context.Background(), GateOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() == 0 {
		t.Error("expected formatted output on stdout")
	}
}

func TestGate_ChecksFail(t *testing.T) {
	g, _, _ := newTestGate()
	g.Engine = &mockGateRunner{result: failingReport()}

	err := g.Execute(context.Background(), GateOpts{})
	if !errors.Is(err, ErrGateFailed) {
		t.Fatalf("expected ErrGateFailed, got %v", err)
	}
}

func TestGate_DryRun_ChecksFail(t *testing.T) {
	g, _, _ := newTestGate()
	g.Engine = &mockGateRunner{result: failingReport()}

	err := g.Execute(context.Background(), GateOpts{DryRun: true})
	if err != nil {
		t.Fatalf("dry run should not return error even on check failure, got %v", err)
	}
}

func TestGate_ConfigLoadError(t *testing.T) {
	g, _, _ := newTestGate()
	runner := &mockGateRunner{result: passingReport()}
	g.Engine = runner
	g.LoadConfig = func(_ context.Context, _ string) (*config.Config, error) {
		return nil, errors.New("config not found")
	}

	err := g.Execute(context.Background(), GateOpts{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "config not found" {
		t.Errorf("expected 'config not found', got %q", err.Error())
	}
	if runner.checks != nil {
		t.Error("no check must run on a configuration error")
	}
}

func TestGate_DockerCheckFails(t *testing.T) {
	g, _, _ := newTestGate()
	g.Docker = &mockDockerChecker{err: errors.New("docker not running")}

	err := g.Execute(context.Background(), GateOpts{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "docker not running" {
		t.Errorf("expected 'docker not running', got %q", err.Error())
	}
}

func TestGate_NoDockerPreflightForHostChecks(t *testing.T) {
	g, _, _ := newTestGate()
	docker := &mockDockerChecker{err: errors.New("docker not running")}
	g.Docker = docker
	g.LoadConfig = func(_ context.Context, _ string) (*config.Config, error) {
		return &config.Config{
			Version: 1,
			Checks: []config.Check{
				{Name: "build", Type: config.CheckTypeExec, Command: "go build ./..."},
			},
		}, nil
	}

	err := g.Execute(context.Background(), GateOpts{})
	if err != nil {
		t.Fatalf("host-only config must not require Docker, got %v", err)
	}
	if docker.called {
		t.Error("preflight should be skipped when no check uses a container")
	}
}

func TestGate_EmptyConfig(t *testing.T) {
	g, _, stderr := newTestGate()
	g.LoadConfig = func(_ context.Context, _ string) (*config.Config, error) {
		return &config.Config{Version: 1}, nil
	}

	err := g.Execute(context.Background(), GateOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("No checks configured")) {
		t.Errorf("expected 'No checks configured' message, got %q", stderr.String())
	}
}

func TestGate_RunnerError(t *testing.T) {
	g, _, _ := newTestGate()
	g.Engine = &mockGateRunner{err: errors.New("execution error")}

	err := g.Execute(context.Background(), GateOpts{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "execution error" {
		t.Errorf("unexpected error: %q", err.Error())
	}
}

func TestGate_JSONOutput(t *testing.T) {
	g, stdout, _ := newTestGate()

	err := g.Execute(context.Background(), GateOpts{JSON: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// JSON output should contain "passed" field.
	if !bytes.Contains(stdout.Bytes(), []byte(`"passed"`)) {
		t.Errorf("expected JSON output, got %q", stdout.String())
	}
}

func TestGate_QuietOutput(t *testing.T) {
	g, stdout, _ := newTestGate()

	err := g.Execute(context.Background(), GateOpts{Quiet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("✅")) {
		t.Errorf("expected quiet success marker, got %q", stdout.String())
	}
}

func TestGate_QuietOutputFailure(t *testing.T) {
	g, stdout, _ := newTestGate()
	g.Engine = &mockGateRunner{result: failingReport()}

	err := g.Execute(context.Background(), GateOpts{Quiet: true})
	if !errors.Is(err, ErrGateFailed) {
		t.Fatalf("expected ErrGateFailed, got %v", err)
	}
	out := stdout.String()
	if !bytes.Contains([]byte(out), []byte("❌")) {
		t.Errorf("expected quiet failure marker, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("Could you take a look?")) {
		t.Errorf("expected escalation question in quiet output, got %q", out)
	}
}

func TestGate_StartProgress(t *testing.T) {
	g, _, _ := newTestGate()
	var total int
	g.StartProgress = func(n int) { total = n }

	err := g.Execute(context.Background(), GateOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected progress started with 1 check, got %d", total)
	}
}
