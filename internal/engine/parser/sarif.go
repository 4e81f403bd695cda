package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// SarifParser parses SARIF v2.1.0 JSON as emitted by security scanners and
// linters (gosec, ruff, golangci-lint, semgrep).
type SarifParser struct{}

// NewSarifParser creates a new SarifParser.
func NewSarifParser() *SarifParser {
	return &SarifParser{}
}

// Parse implements the Parser interface.
// An empty stdout with a non-zero exit code fails closed: the tool crashed
// before producing a report, and that must not count as a pass.
func (p *SarifParser) Parse(_ context.Context, stdout, stderr []byte, exitCode int) (*Result, error) {
	if len(bytes.TrimSpace(stdout)) == 0 {
		if exitCode != 0 {
			msg := string(stderr)
			if msg == "" {
				msg = "Tool failed with non-zero exit code and empty stdout"
			}
			return &Result{
				Passed: false,
				Findings: []Finding{
					{
						Severity: SeverityError,
						Message:  msg,
						Tool:     "sarif",
					},
				},
			}, nil
		}
		return &Result{Passed: true}, nil
	}

	report, err := sarif.FromBytes(stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing SARIF JSON: %w", err)
	}

	var findings []Finding
	failed := false

	for _, run := range report.Runs {
		toolName := run.Tool.Driver.Name

		for _, outcome := range run.Results {
			level := "info"
			if outcome.Level != nil {
				level = *outcome.Level
			}

			severity := SeverityInfo
			switch strings.ToLower(level) {
			case "error":
				severity = SeverityError
				failed = true
			case "warning":
				severity = SeverityWarning
			case "note", "none":
				severity = SeverityInfo
			}

			ruleID := ""
			if outcome.RuleID != nil {
				ruleID = *outcome.RuleID
			}

			msg := ""
			if outcome.Message.Text != nil {
				msg = *outcome.Message.Text
			}

			file, line, col := sarifLocation(outcome)

			findings = append(findings, Finding{
				File:     file,
				Line:     line,
				Column:   col,
				Severity: severity,
				Rule:     ruleID,
				Message:  msg,
				Tool:     toolName,
			})
		}
	}

	return &Result{
		Passed:   !failed,
		Findings: findings,
	}, nil
}

// sarifLocation extracts the first physical location of a SARIF result.
func sarifLocation(outcome *sarif.Result) (file string, line, col int) {
	if len(outcome.Locations) == 0 {
		return "", 0, 0
	}
	loc := outcome.Locations[0]
	if loc.PhysicalLocation == nil {
		return "", 0, 0
	}
	if art := loc.PhysicalLocation.ArtifactLocation; art != nil && art.URI != nil {
		file = *art.URI
	}
	if region := loc.PhysicalLocation.Region; region != nil {
		if region.StartLine != nil {
			line = *region.StartLine
		}
		if region.StartColumn != nil {
			col = *region.StartColumn
		}
	}
	return file, line, col
}
