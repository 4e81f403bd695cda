package check

import (
	"fmt"

	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/fix"
	"github.com/verigate/verigate/internal/engine/git"
	"github.com/verigate/verigate/internal/engine/llm"
	"github.com/verigate/verigate/internal/engine/parser"
)

// Factory creates Check instances from configuration.
type Factory struct {
	pool        PoolManager
	executor    ContainerExecutor
	host        HostExecutor
	registry    *parser.Registry
	llmClient   llm.Client
	gitService  git.Service
	projectPath string
}

// NewFactory creates a new Factory with the given dependencies.
// llmClient may be nil if no review checks are configured.
func NewFactory(
	p PoolManager,
	exec ContainerExecutor,
	host HostExecutor,
	reg *parser.Registry,
	llmClient llm.Client,
	gitSvc git.Service,
	projectPath string,
) *Factory {
	return &Factory{
		pool:        p,
		executor:    exec,
		host:        host,
		registry:    reg,
		llmClient:   llmClient,
		gitService:  gitSvc,
		projectPath: projectPath,
	}
}

// Create builds a Check from a config entry.
// Returns an error if the check type is unknown or dependencies are missing.
func (f *Factory) Create(cfg config.Check) (Check, error) {
	switch cfg.Type {
	case config.CheckTypeExec, config.CheckTypeScript:
		return f.createCommandCheck(cfg), nil
	case config.CheckTypeReview:
		return f.createReviewCheck(cfg)
	default:
		return nil, fmt.Errorf("unknown check type %q for check %q", cfg.Type, cfg.Name)
	}
}

// createCommandCheck builds a CommandCheck with the appropriate parser.
// Handles both "exec" and "script" check types. Checks that carry a fix
// command get a writable project mount so the fix can rewrite files.
func (f *Factory) createCommandCheck(cfg config.Check) Check {
	prs := f.registry.GetOrDefault(cfg.Parser)
	_, fixable := fix.Resolve(cfg)
	return NewCommandCheck(cfg, f.pool, f.executor, f.host, prs, f.projectPath, fixable)
}

// createReviewCheck builds a ReviewCheck, returning an error if no LLM client is configured.
func (f *Factory) createReviewCheck(cfg config.Check) (Check, error) {
	if f.llmClient == nil {
		return nil, fmt.Errorf("check %q requires an LLM client but none is configured — set VERIGATE_GEMINI_KEY or add to ~/.config/verigate/config.yaml", cfg.Name)
	}
	return NewReviewCheck(cfg, f.llmClient, f.gitService), nil
}
