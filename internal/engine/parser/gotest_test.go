package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoTestParser_AllPassing(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "gotest_pass.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	p := NewGoTestParser()
	res, err := p.Parse(context.Background(), data, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Passed {
		t.Error("expected passed")
	}
	if len(res.Findings) != 0 {
		t.Errorf("expected 0 findings, got %d", len(res.Findings))
	}
}

func TestGoTestParser_SomeFailures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "gotest_fail.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	p := NewGoTestParser()
	res, err := p.Parse(context.Background(), data, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Passed {
		t.Error("expected failed")
	}

	// Two failing tests: TestDivide and TestMultiply.
	if len(res.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(res.Findings))
	}

	f1 := res.Findings[0]
	if f1.Severity != SeverityError {
		t.Errorf("expected severity error, got %q", f1.Severity)
	}
	if f1.Tool != "go-test" {
		t.Errorf("expected tool go-test, got %q", f1.Tool)
	}
	if !strings.Contains(f1.Message, "expected 2, got 3") {
		t.Errorf("expected failure output in message, got %q", f1.Message)
	}
}

func TestGoTestParser_BuildError(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "gotest_builderror.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	p := NewGoTestParser()
	res, err := p.Parse(context.Background(), data, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Passed {
		t.Error("expected failed")
	}

	// One package-level failure, no test-level entries.
	if len(res.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(res.Findings))
	}
	if !strings.Contains(res.Findings[0].Message, "undefined: misspelledFunc") {
		t.Errorf("expected compiler output in message, got %q", res.Findings[0].Message)
	}
}

func TestGoTestParser_EmptyStdout_NonZeroExit(t *testing.T) {
	p := NewGoTestParser()
	res, err := p.Parse(context.Background(), nil, []byte("cannot find package"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Passed {
		t.Error("expected failed")
	}
	if res.Findings[0].Message != "cannot find package" {
		t.Errorf("expected stderr message, got %q", res.Findings[0].Message)
	}
}

func TestGoTestParser_InvalidJSON(t *testing.T) {
	p := NewGoTestParser()
	_, err := p.Parse(context.Background(), []byte("not json at all"), nil, 1)
	if err == nil {
		t.Fatal("expected error for invalid JSON stream")
	}
}
