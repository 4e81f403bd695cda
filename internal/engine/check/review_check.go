package check

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/git"
	"github.com/verigate/verigate/internal/engine/llm"
	"github.com/verigate/verigate/internal/engine/report"
	"github.com/verigate/verigate/internal/platform/logger"
)

// ReviewCheck sends the uncommitted diff to an LLM for semantic code review.
type ReviewCheck struct {
	cfg    config.Check
	client llm.Client
	gitSvc git.Service
}

// NewReviewCheck creates a new ReviewCheck.
func NewReviewCheck(cfg config.Check, client llm.Client, gitSvc git.Service) *ReviewCheck {
	return &ReviewCheck{
		cfg:    cfg,
		client: client,
		gitSvc: gitSvc,
	}
}

// Execute extracts the working diff, sends it to the LLM, and returns structured results.
func (c *ReviewCheck) Execute(ctx context.Context) (*report.CheckResult, error) {
	log := logger.FromContext(ctx)
	log.Info("ReviewCheck.Execute started", "check", c.cfg.Name, "provider", c.cfg.Provider)
	start := time.Now()

	result := &report.CheckResult{
		Name:     c.cfg.Name,
		Kind:     string(c.cfg.Type),
		Severity: c.cfg.GetSeverity(),
	}

	// 1. Get the uncommitted diff
	diffs, err := c.gitSvc.WorkingDiff(ctx)
	if err != nil {
		result.Status = report.StatusFailed
		result.SystemError = fmt.Sprintf("failed to get working diff: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	if len(diffs) == 0 {
		result.Status = report.StatusPassed
		result.DurationMs = time.Since(start).Milliseconds()
		log.Info("ReviewCheck.Execute passed — nothing to review", "check", c.cfg.Name)
		return result, nil
	}

	// 2. Filter by size
	maxSize := parseMaxFileSize(c.cfg.MaxFileSize)
	filtered, _ := git.FilterBySize(diffs, maxSize)

	if len(filtered) == 0 {
		result.Status = report.StatusPassed
		result.DurationMs = time.Since(start).Milliseconds()
		log.Info("ReviewCheck.Execute passed — all files exceed size limit", "check", c.cfg.Name)
		return result, nil
	}

	// 3. Build prompt and review
	prompt := llm.BuildPrompt(c.cfg.Prompt, "", filtered)
	findings, err := c.client.Review(ctx, prompt)
	if err != nil {
		result.Status = report.StatusFailed
		result.SystemError = fmt.Sprintf("LLM review failed: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	// 4. Validate line numbers against actual diffs (hallucination mitigation)
	validated := llm.ValidateLineNumbers(findings, filtered)

	// 5. Set tool field
	for i := range validated {
		validated[i].Tool = c.cfg.Provider
	}

	result.Findings = validated
	if len(validated) == 0 {
		result.Status = report.StatusPassed
	} else {
		result.Status = report.StatusFailed
	}

	result.DurationMs = time.Since(start).Milliseconds()
	log.Info("ReviewCheck.Execute completed", "check", c.cfg.Name, "status", result.Status, "issues", len(validated), "duration_ms", result.DurationMs)
	return result, nil
}

// parseMaxFileSize converts a size string like "100KB" to bytes.
// Supports KB, MB suffixes (case-insensitive). Returns 0 (no limit) on empty or invalid input.
func parseMaxFileSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.ToUpper(s)

	var multiplier int
	var numStr string

	switch {
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = s[:len(s)-2]
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = s[:len(s)-2]
	default:
		// Assume bytes
		multiplier = 1
		numStr = s
	}

	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil || n <= 0 {
		return 0
	}

	return n * multiplier
}

// Ensure ReviewCheck and CommandCheck implement Check at compile time.
var (
	_ Check = (*ReviewCheck)(nil)
	_ Check = (*CommandCheck)(nil)
)
