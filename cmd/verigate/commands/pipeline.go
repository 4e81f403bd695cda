package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verigate/verigate/internal/engine/check"
	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/git"
	"github.com/verigate/verigate/internal/engine/llm"
	"github.com/verigate/verigate/internal/engine/parser"
	"github.com/verigate/verigate/internal/engine/pool"
	"github.com/verigate/verigate/internal/engine/runner"
	"github.com/verigate/verigate/internal/platform/logger"
)

// ErrGateFailed is returned when the gate does not pass.
var ErrGateFailed = errors.New("gate failed")

// runGate wires real infrastructure and delegates to Gate.Execute.
// This is a composition root — it instantiates production dependencies.
func runGate(ctx context.Context, dryRun bool) error {
	log := logger.FromContext(ctx)

	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	// Load global config to determine LLM availability and fix preferences.
	globalCfg, err := config.LoadGlobalConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}

	// Docker is only required when a check names a container image, so a
	// connection failure here is deferred until the preflight check runs.
	var docker DockerChecker
	var p check.PoolManager
	var exec check.ContainerExecutor
	runtime, rtErr := pool.NewDockerRuntime()
	if rtErr != nil {
		docker = &dockerCheckerAdapter{err: rtErr}
	} else {
		docker = &dockerCheckerAdapter{runtime: runtime}
		p = pool.NewPool(runtime)
		exec = pool.NewExecutor(runtime)
	}

	reg := parser.NewRegistry()
	reg.Register("sarif", parser.NewSarifParser())
	reg.Register("go-test-json", parser.NewGoTestParser())

	var llmClient llm.Client
	if !globalCfg.GeminiAPIKey.IsEmpty() {
		llmClient = llm.NewGeminiClient(string(globalCfg.GeminiAPIKey), "", llm.DefaultClientFactory)
	}

	gitSvc := git.NewExecService(projectDir)
	host := pool.NewLocalExecutor(projectDir)
	factory := check.NewFactory(p, exec, host, reg, llmClient, gitSvc, projectDir)

	engine := runner.NewEngine(factory, gitSvc, globalCfg.AutoFix && !flagNoFix)
	engine.Skip = flagSkip
	engine.SkipReview = flagSkipReview

	// Assemble the gate with real infrastructure.
	gate := &Gate{
		Docker:     docker,
		Engine:     engine,
		LoadConfig: config.Load,
		ConfigPath: filepath.Join(projectDir, ".verigate", "checks.yaml"),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		StartProgress: func(total int) {
			engine.Progress = runner.NewProgress(os.Stderr, flagJSON || flagQuiet, total)
		},
	}

	err = gate.Execute(ctx, GateOpts{
		DryRun:  dryRun,
		JSON:    flagJSON,
		Quiet:   flagQuiet,
		Verbose: flagVerbose || globalCfg.OutputVerbose,
		NoColor: flagNoColor || !globalCfg.OutputColor,
	})
	if err != nil && !errors.Is(err, ErrGateFailed) {
		log.Error("gate execution failed", "error", err)
	}
	return err
}

// dockerCheckerAdapter wraps pool.ContainerRuntime to implement DockerChecker.
// If the Docker client could not be created, the stored error is returned
// instead of running the preflight ping.
type dockerCheckerAdapter struct {
	runtime pool.ContainerRuntime
	err     error
}

func (d *dockerCheckerAdapter) CheckDocker(ctx context.Context) error {
	if d.err != nil {
		return fmt.Errorf("connecting to Docker: %w", d.err)
	}
	return pool.CheckDocker(ctx, d.runtime)
}
