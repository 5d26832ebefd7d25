package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resume-optimizer/config"
	_ "resume-optimizer/docs" // Swagger docs
	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/agent/orchestrator"
	"resume-optimizer/internal/agent/tools"
	"resume-optimizer/internal/httpserver"
	"resume-optimizer/internal/metrics"
	resumeUC "resume-optimizer/internal/resume/usecase"
	"resume-optimizer/pkg/log"
	"resume-optimizer/pkg/pdfrender"
	"resume-optimizer/pkg/pdftext"
)

// @title       Resume Optimizer API
// @description Agent-driven ATS resume optimization: upload a PDF and a job description, get a tailored PDF back.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Resume Optimizer...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	metrics.MustRegister()
	recorder := metrics.NewRecorder()

	// 3. LLM providers
	llm, err := newLLMManager(ctx, cfg, logger, recorder)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	// 4. Tools: web search chain + PDF generator
	searcher, err := newSearchChain(ctx, cfg, logger, recorder)
	if err != nil {
		logger.Error(ctx, "Failed to initialize web search: ", err)
		return
	}
	if err := os.MkdirAll(cfg.PDF.OutputDir, 0o755); err != nil {
		logger.Error(ctx, "Failed to create output directory: ", err)
		return
	}
	generator := pdfrender.NewGenerator(
		logger,
		pdfrender.NewChromedpRenderer(cfg.PDF.ChromePath, cfg.PDF.PageSize),
		cfg.PDF.OutputDir,
		cfg.PDF.PageSize,
	)

	registry := agent.NewToolRegistry()
	registry.MustRegister(tools.NewAll(searcher, generator)...)
	logger.Infof(ctx, "Registered tools: %v", registry.Names())

	// 5. Orchestrator
	orch := orchestrator.New(llm, registry, logger, orchestrator.Config{
		Policy: agent.TerminationPolicy{
			MaxContextResults: cfg.Agent.MaxContextResults,
			MaxWebSearchCalls: cfg.Agent.MaxWebSearchCalls,
			MaxOptimizeCalls:  cfg.Agent.MaxOptimizeCalls,
		},
		MaxIterations: cfg.Agent.MaxIterations,
		Temperature:   &cfg.Agent.Temperature,
		RunObserver:   recorder,
		ToolObserver:  recorder,
	})

	// 6. Session store, locker and upload repository
	backends, err := newBackends(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize backends: ", err)
		return
	}
	defer backends.Close()

	uc := resumeUC.New(logger, resumeUC.Config{
		Runner:        orch,
		Store:         backends.store,
		Locker:        backends.locker,
		Repo:          backends.repo,
		Extract:       pdftext.ExtractBytes,
		OutputDir:     cfg.PDF.OutputDir,
		RunTimeout:    cfg.Agent.RunTimeout,
		MaxIterations: cfg.Agent.MaxIterations,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		MaxUploadMB:     cfg.HTTPServer.MaxUploadMB,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		ResumeUseCase:   uc,
		Readiness:       backends.readiness,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
