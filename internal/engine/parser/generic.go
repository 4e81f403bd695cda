package parser

import (
	"context"
	"strings"
)

// ExitCodeParser is the fallback parser for tools without structured output.
// It relies solely on the process exit code.
type ExitCodeParser struct{}

// NewExitCodeParser creates a new ExitCodeParser.
func NewExitCodeParser() *ExitCodeParser {
	return &ExitCodeParser{}
}

// Parse implements the Parser interface.
// Exit code 0 passes. Any other exit code fails with stderr (or stdout)
// captured as a single error-severity finding.
func (p *ExitCodeParser) Parse(_ context.Context, stdout, stderr []byte, exitCode int) (*Result, error) {
	if exitCode == 0 {
		return &Result{Passed: true}, nil
	}

	msg := string(stderr)
	if strings.TrimSpace(msg) == "" {
		msg = string(stdout)
	}
	if strings.TrimSpace(msg) == "" {
		msg = "Tool failed with no output"
	}

	return &Result{
		Passed: false,
		Findings: []Finding{
			{
				Severity: SeverityError,
				Message:  strings.TrimSpace(msg),
				Tool:     "exit-code",
			},
		},
	}, nil
}
