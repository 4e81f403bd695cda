package llm

import (
	"context"

	"github.com/verigate/verigate/internal/engine/parser"
)

// MockClient is a test double for llm.Client.
type MockClient struct {
	Result []parser.Finding
	Err    error
}

// Review returns the configured result and error.
func (m *MockClient) Review(_ context.Context, _ string) ([]parser.Finding, error) {
	return m.Result, m.Err
}
