package report

import (
	"fmt"
	"strings"
)

// BuildQuestion turns an unfixable failure into a short plain-language
// question for the caller. It is composed from structured fields only —
// never from raw tool output — so stack traces, goroutine dumps, and
// internal identifiers cannot leak into it.
func BuildQuestion(c CheckResult) string {
	subject := describeCheck(c)

	var detail string
	switch {
	case c.SystemError != "":
		detail = "the tool could not be run"
	case len(c.Findings) == 1:
		detail = describeLocation(c, "one issue")
	case len(c.Findings) > 1:
		detail = describeLocation(c, fmt.Sprintf("%d issues", len(c.Findings)))
	}

	q := subject
	if c.FixApplied {
		q += " even after an automatic fix was attempted"
	}
	if detail != "" {
		q += " (" + detail + ")"
	}
	return q + ". Could you take a look?"
}

// describeCheck maps a check to a friendly subject phrase. The check name is
// user-supplied configuration, so it is safe to echo.
func describeCheck(c CheckResult) string {
	name := strings.ToLower(c.Name)
	switch {
	case c.Kind == "review":
		return "The code review flagged problems"
	case strings.Contains(name, "test"):
		return "The test suite is failing"
	case strings.Contains(name, "build") || strings.Contains(name, "compile"):
		return "The project does not build"
	case strings.Contains(name, "lint") || strings.Contains(name, "vet") || strings.Contains(name, "format"):
		return fmt.Sprintf("The %s check is reporting problems", c.Name)
	case strings.Contains(name, "sec") || strings.Contains(name, "scan"):
		return "The security scan found problems"
	default:
		return fmt.Sprintf("The %s check is failing", c.Name)
	}
}

// describeLocation appends the first finding's file reference when present.
func describeLocation(c CheckResult, count string) string {
	first := c.Findings[0]
	if first.File == "" {
		return count
	}
	if first.Line > 0 {
		return fmt.Sprintf("%s, starting at %s:%d", count, first.File, first.Line)
	}
	return fmt.Sprintf("%s, starting in %s", count, first.File)
}
