// Package config handles parsing and validation of verigate configuration files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verigate/verigate/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// CheckType represents the type of a check.
type CheckType string

const (
	CheckTypeExec   CheckType = "exec"
	CheckTypeScript CheckType = "script"
	CheckTypeReview CheckType = "review"
)

// Severity values for the gate impact of a failing check.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("no .verigate/checks.yaml found. Run 'verigate init' first")

// Config is the top-level project configuration.
type Config struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Checks   []Check  `yaml:"checks"`
}

// Defaults holds default values applied to checks missing optional fields.
type Defaults struct {
	Container string        `yaml:"container"`
	Timeout   time.Duration `yaml:"timeout"`
	Severity  string        `yaml:"severity"`
}

// Check represents a single check configuration. Checks run strictly in the
// order they are listed.
type Check struct {
	Name      string        `yaml:"name"`
	Type      CheckType     `yaml:"type"`
	Command   string        `yaml:"command,omitempty"`
	Path      string        `yaml:"path,omitempty"`
	Container string        `yaml:"container,omitempty"`
	Parser    string        `yaml:"parser,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	Severity  string        `yaml:"severity,omitempty"`
	// Needs lists earlier checks this one depends on. If any of them does
	// not pass, this check is skipped rather than run.
	Needs []string `yaml:"needs,omitempty"`
	// Fix is a remediation command applied once when this check fails.
	// Overrides the built-in fix registry.
	Fix         string   `yaml:"fix,omitempty"`
	Only        []string `yaml:"only,omitempty"`
	Except      []string `yaml:"except,omitempty"`
	Provider    string   `yaml:"provider,omitempty"`
	Prompt      string   `yaml:"prompt,omitempty"`
	MaxFileSize string   `yaml:"max_file_size,omitempty"`
}

// GetSeverity returns the check's gate impact, defaulting to "error".
func (c *Check) GetSeverity() string {
	if c.Severity != "" {
		return c.Severity
	}
	return SeverityError
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads and parses a checks.yaml configuration file from the given path.
// Returns ErrConfigNotFound if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger.FromContext(ctx).Debug("loading config file", "path", path)
	// [SEC] Prevent path traversal
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing checks.yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses a checks.yaml configuration file from the given path
// using the real file system.
func Load(ctx context.Context, path string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx, path)
}

// applyDefaults applies values from the defaults section to checks missing
// optional fields.
func applyDefaults(cfg *Config) {
	for i := range cfg.Checks {
		c := &cfg.Checks[i]

		if c.Container == "" && cfg.Defaults.Container != "" {
			c.Container = cfg.Defaults.Container
		}
		if c.Timeout == 0 && cfg.Defaults.Timeout > 0 {
			c.Timeout = cfg.Defaults.Timeout
		}
		if c.Severity == "" && cfg.Defaults.Severity != "" {
			c.Severity = cfg.Defaults.Severity
		}
	}
}

// validate checks that all checks have required fields for their type and
// that needs references resolve to earlier checks. Any violation is a
// configuration error: the gate must abort before running a single check.
// Returns a joined error so users can fix everything at once.
func validate(cfg *Config) error {
	var errs []error

	seen := make(map[string]bool, len(cfg.Checks))
	for _, c := range cfg.Checks {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("check at position has missing required field 'name'"))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("check %q: duplicate name", c.Name))
		}

		switch c.Type {
		case CheckTypeExec:
			if c.Command == "" {
				errs = append(errs, fmt.Errorf("check %q: missing required field 'command' for type 'exec'", c.Name))
			}
		case CheckTypeScript:
			if c.Path == "" {
				errs = append(errs, fmt.Errorf("check %q: missing required field 'path' for type 'script'", c.Name))
			} else if strings.Contains(c.Path, "'") {
				errs = append(errs, fmt.Errorf("check %q: path contains invalid character (single quote)", c.Name))
			}
		case CheckTypeReview:
			if c.Provider == "" {
				errs = append(errs, fmt.Errorf("check %q: missing required field 'provider' for type 'review'", c.Name))
			}
			if c.Prompt == "" {
				errs = append(errs, fmt.Errorf("check %q: missing required field 'prompt' for type 'review'", c.Name))
			}
		case "":
			errs = append(errs, fmt.Errorf("check %q: missing required field 'type'", c.Name))
		default:
			errs = append(errs, fmt.Errorf("check %q: unknown check type %q (valid: exec, script, review)", c.Name, c.Type))
		}

		switch c.GetSeverity() {
		case SeverityInfo, SeverityWarning, SeverityError:
		default:
			errs = append(errs, fmt.Errorf("check %q: unknown severity %q (valid: info, warning, error)", c.Name, c.Severity))
		}

		// Dependencies must point at checks declared EARLIER: execution is
		// strictly sequential in list order, so a forward reference could
		// never be satisfied.
		for _, dep := range c.Needs {
			if dep == c.Name {
				errs = append(errs, fmt.Errorf("check %q: depends on itself", c.Name))
			} else if !seen[dep] {
				errs = append(errs, fmt.Errorf("check %q: needs %q, which is not declared earlier in the list", c.Name, dep))
			}
		}

		seen[c.Name] = true
	}

	return errors.Join(errs...)
}
