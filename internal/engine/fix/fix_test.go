package fix

import (
	"testing"

	"github.com/verigate/verigate/internal/engine/config"
)

func TestResolve_ConfigOverrideWins(t *testing.T) {
	check := config.Check{
		Name:    "format",
		Command: "test -z \"$(gofmt -l .)\"",
		Fix:     "make fmt",
	}

	f, ok := Resolve(check)
	if !ok {
		t.Fatal("expected a fix")
	}
	if f.Command != "make fmt" {
		t.Errorf("expected config fix 'make fmt', got %q", f.Command)
	}
	if f.Source != "config" {
		t.Errorf("expected source 'config', got %q", f.Source)
	}
}

func TestResolve_BuiltinByToolName(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"gofmt", "test -z \"$(gofmt -l .)\"", "gofmt -w ."},
		{"eslint", "npx eslint src/", "npx eslint . --fix"},
		{"ruff", "ruff check .", "ruff check --fix ."},
		{"black", "black --check .", "black ."},
		{"golangci", "golangci-lint run ./...", "golangci-lint run --fix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Resolve(config.Check{Name: tt.name, Command: tt.command})
			if !ok {
				t.Fatalf("expected a builtin fix for %q", tt.command)
			}
			if f.Command != tt.want {
				t.Errorf("expected %q, got %q", tt.want, f.Command)
			}
			if f.Source != "builtin" {
				t.Errorf("expected source 'builtin', got %q", f.Source)
			}
		})
	}
}

func TestResolve_NoFixForUnknownTool(t *testing.T) {
	_, ok := Resolve(config.Check{Name: "build", Command: "go build ./..."})
	if ok {
		t.Error("expected no fix for a build command")
	}
}

func TestResolve_NoFixForUnfixableTool(t *testing.T) {
	// go vet findings cannot be repaired mechanically.
	_, ok := Resolve(config.Check{Name: "vet", Command: "go vet ./..."})
	if ok {
		t.Error("expected no fix for go vet")
	}
}
