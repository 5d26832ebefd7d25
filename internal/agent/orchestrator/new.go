package orchestrator

import (
	"context"

	"resume-optimizer/internal/agent"
	"resume-optimizer/pkg/llmprovider"
	pkgLog "resume-optimizer/pkg/log"
)

// LLM is the model-invocation capability; *llmprovider.Manager satisfies it.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config holds orchestrator defaults. A nil Temperature selects
// DefaultTemperature; zero is a valid setting.
type Config struct {
	Policy        agent.TerminationPolicy
	MaxIterations int
	Temperature   *float64
	RunObserver   RunObserver
	ToolObserver  agent.ToolObserver
}

type Orchestrator struct {
	llm      LLM
	registry *agent.ToolRegistry
	executor *agent.Executor
	prompts  *agent.PromptBuilder
	l        pkgLog.Logger
	cfg      Config
}

func New(llm LLM, registry *agent.ToolRegistry, l pkgLog.Logger, cfg Config) *Orchestrator {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Temperature == nil {
		t := DefaultTemperature
		cfg.Temperature = &t
	}
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		executor: agent.NewExecutor(registry, l, cfg.ToolObserver),
		prompts:  agent.NewPromptBuilder(registry),
		l:        l,
		cfg:      cfg,
	}
}
