package config

import (
	"fmt"
	"strings"
)

// Language represents a detected (or declared) project language.
type Language string

const (
	// LanguageGo indicates a Go project (detected by go.mod).
	LanguageGo Language = "go"
	// LanguageNode indicates a Node.js project (detected by package.json).
	LanguageNode Language = "node"
	// LanguagePython indicates a Python project (detected by requirements.txt or pyproject.toml).
	LanguagePython Language = "python"
)

// markerFiles maps file names to their corresponding language.
var markerFiles = map[string]Language{
	"go.mod":           LanguageGo,
	"package.json":     LanguageNode,
	"requirements.txt": LanguagePython,
	"pyproject.toml":   LanguagePython,
}

// ParseLanguage resolves an explicit language hint. An unknown hint is a
// configuration error: the gate aborts before any check runs.
func ParseLanguage(hint string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(hint))) {
	case LanguageGo:
		return LanguageGo, nil
	case LanguageNode, "nodejs", "javascript", "typescript":
		return LanguageNode, nil
	case LanguagePython:
		return LanguagePython, nil
	default:
		return "", fmt.Errorf("unknown language %q (supported: go, node, python)", hint)
	}
}

// DetectLanguages scans file names for well-known marker files and returns
// the detected languages. Pure function — no I/O.
// Each language is returned at most once even if multiple markers match.
func DetectLanguages(files []string) []Language {
	seen := make(map[Language]bool)
	var langs []Language

	for _, f := range files {
		if lang, ok := markerFiles[f]; ok && !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}

	return langs
}

// GenerateChecksYAML produces a checks.yaml configuration string for the
// given languages. If no languages are provided, a minimal example config
// with commented checks is returned.
// Each language block follows the fixed gate order: build, tests, lint,
// security scan, review — with `needs` wiring so a broken build skips the
// checks that depend on its artifacts.
func GenerateChecksYAML(langs []Language) string {
	if len(langs) == 0 {
		return fallbackYAML
	}

	var b strings.Builder
	b.WriteString(yamlHeader)

	for _, l := range langs {
		switch l {
		case LanguageGo:
			b.WriteString(goChecks)
		case LanguageNode:
			b.WriteString(nodeChecks)
		case LanguagePython:
			b.WriteString(pythonChecks)
		}
	}

	b.WriteString(reviewCheck)
	return b.String()
}

const yamlHeader = `# Verigate configuration — auto-generated
# Checks run top to bottom, one at a time. A check whose "needs" did not
# pass is skipped, never failed. "fix" commands are applied at most once.
version: 1

defaults:
  timeout: 60s
  severity: error

checks:
`

const goChecks = `  # --- Go ---
  - name: go-build
    type: exec
    command: "go build ./..."
    only: ["*.go", "go.mod"]

  - name: go-test
    type: exec
    command: "go test -json ./..."
    parser: go-test-json
    needs: [go-build]
    timeout: 120s
    only: ["*.go"]

  - name: go-format
    type: exec
    command: "test -z \"$(gofmt -l .)\""
    fix: "gofmt -w ."
    severity: warning
    only: ["*.go"]

  - name: go-vet
    type: exec
    command: "go vet ./..."
    needs: [go-build]
    only: ["*.go"]

  # - name: go-security
  #   type: exec
  #   command: "gosec -fmt sarif -quiet ./..."
  #   parser: sarif
  #   needs: [go-build]
  #   only: ["*.go"]

`

const nodeChecks = `  # --- Node.js ---
  - name: node-build
    type: exec
    command: "npm run build --if-present"
    only: ["*.js", "*.ts", "*.jsx", "*.tsx", "package.json"]

  - name: node-test
    type: exec
    command: "npm test"
    needs: [node-build]
    timeout: 120s
    only: ["*.js", "*.ts", "*.jsx", "*.tsx"]

  - name: eslint
    type: exec
    command: "npx eslint --format json ."
    fix: "npx eslint --fix ."
    only: ["*.js", "*.ts", "*.jsx", "*.tsx"]

  # - name: prettier
  #   type: exec
  #   command: "npx prettier --check ."
  #   fix: "npx prettier --write ."
  #   severity: warning

`

const pythonChecks = `  # --- Python ---
  - name: py-compile
    type: exec
    command: "python -m compileall -q ."
    only: ["*.py"]

  - name: pytest
    type: exec
    command: "pytest"
    needs: [py-compile]
    timeout: 120s
    only: ["*.py"]

  - name: ruff
    type: exec
    command: "ruff check --output-format sarif ."
    parser: sarif
    fix: "ruff check --fix ."
    only: ["*.py"]

  # - name: bandit
  #   type: exec
  #   command: "bandit -r -f sarif ."
  #   parser: sarif
  #   severity: warning

`

const reviewCheck = `  # --- Code review (requires VERIGATE_GEMINI_KEY) ---
  # - name: review
  #   type: review
  #   provider: gemini-3-pro
  #   prompt: "Review for bugs, security issues, and unclear naming."
  #   max_file_size: 100KB
`

const fallbackYAML = `# Verigate configuration
# No project language detected. Add checks below to get started.
version: 1

defaults:
  timeout: 60s
  severity: error

checks:
  # Example check — uncomment and customize:
  # - name: lint
  #   type: exec
  #   command: "echo 'Add your linter command here'"
`
