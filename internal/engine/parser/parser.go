// Package parser normalizes raw check-tool output into structured findings.
package parser

import (
	"context"
	"sync"
)

// Severity levels for findings, from least to most severe.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Finding represents a single issue reported by a check tool.
type Finding struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`       // error, warning, info
	Rule     string `json:"rule,omitempty"` // e.g., "gosec:G101"
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	Tool     string `json:"tool"`
}

// Result holds the outcome of parsing one tool invocation.
type Result struct {
	Passed   bool
	Findings []Finding
}

// Parser turns raw tool output into a structured Result.
type Parser interface {
	Parse(ctx context.Context, stdout, stderr []byte, exitCode int) (*Result, error)
}

// Registry manages available parsers by name.
type Registry struct {
	parsers map[string]Parser
	mu      sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
	}
}

// Register adds a parser under the given name.
func (r *Registry) Register(name string, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[name] = p
}

// Get returns a parser by name. Returns nil if not found.
func (r *Registry) Get(name string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsers[name]
}

// GetOrDefault returns a parser by name, or the exit-code parser if not found.
func (r *Registry) GetOrDefault(name string) Parser {
	p := r.Get(name)
	if p != nil {
		return p
	}
	return NewExitCodeParser()
}
