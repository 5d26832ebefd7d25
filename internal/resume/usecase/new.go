package usecase

import (
	"context"
	"time"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/agent/orchestrator"
	"resume-optimizer/internal/resume/repository"
	"resume-optimizer/internal/session"
	"resume-optimizer/pkg/log"
	"resume-optimizer/pkg/pdftext"
)

const (
	DefaultRunTimeout = 180 * time.Second
	DefaultOutputDir  = "optimized_resumes"
)

// Runner drives one agent run; *orchestrator.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, s *agent.Session, userMessage string, opts orchestrator.RunOptions) (orchestrator.RunOutput, error)
}

// Extractor turns PDF bytes into plain text.
type Extractor func(data []byte) (text string, pages int, err error)

// Config wires the use case. Repo may be nil, in which case upload metadata
// is not persisted.
type Config struct {
	Runner        Runner
	Store         session.Store
	Locker        session.Locker
	Repo          repository.Repository
	Extract       Extractor
	OutputDir     string
	RunTimeout    time.Duration
	MaxIterations int
}

// implUseCase is the private implementation of resume.UseCase.
type implUseCase struct {
	l   log.Logger
	cfg Config
	now func() time.Time
}

// New creates a new resume UseCase implementation.
func New(l log.Logger, cfg Config) *implUseCase {
	if cfg.Extract == nil {
		cfg.Extract = pdftext.ExtractBytes
	}
	if cfg.Locker == nil {
		cfg.Locker = session.NewKeyedLocker()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	return &implUseCase{
		l:   l,
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
}
