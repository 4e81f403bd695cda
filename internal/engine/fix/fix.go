// Package fix resolves remediation commands for failing checks.
package fix

import (
	"strings"

	"github.com/verigate/verigate/internal/engine/config"
)

// Fix is a remediation command to run when a check fails.
type Fix struct {
	// Command is the shell command that attempts the repair.
	Command string
	// Source records where the command came from: "config" or "builtin".
	Source string
}

// builtinFixes maps tool name fragments to remediation commands.
// A check's command is matched against these fragments when its config
// declares no explicit fix.
var builtinFixes = []struct {
	fragment string
	command  string
}{
	// Go
	{"gofmt", "gofmt -w ."},
	{"goimports", "goimports -w ."},
	{"golangci-lint", "golangci-lint run --fix"},
	{"go mod tidy", ""}, // already a fix command, nothing further to run
	{"go vet", ""},      // no safe automatic remediation

	// JavaScript / TypeScript
	{"eslint", "npx eslint . --fix"},
	{"prettier", "npx prettier --write ."},

	// Python
	{"ruff format", ""},
	{"ruff", "ruff check --fix ."},
	{"black", "black ."},
	{"isort", "isort ."},
}

// Resolve returns the remediation command for a failed check, if one exists.
// An explicit fix in the check's config always wins over the builtin table.
func Resolve(check config.Check) (Fix, bool) {
	if check.Fix != "" {
		return Fix{Command: check.Fix, Source: "config"}, true
	}

	for _, b := range builtinFixes {
		if strings.Contains(check.Command, b.fragment) {
			if b.command == "" {
				return Fix{}, false
			}
			return Fix{Command: b.command, Source: "builtin"}, true
		}
	}

	return Fix{}, false
}
