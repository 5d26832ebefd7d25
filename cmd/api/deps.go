package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-optimizer/config"
	"resume-optimizer/internal/httpserver"
	"resume-optimizer/internal/metrics"
	"resume-optimizer/internal/resume/repository"
	resumeRepo "resume-optimizer/internal/resume/repository/postgre"
	"resume-optimizer/internal/session"
	"resume-optimizer/internal/session/memory"
	sessionRedis "resume-optimizer/internal/session/redis"
	"resume-optimizer/pkg/llmprovider"
	"resume-optimizer/pkg/log"
	"resume-optimizer/pkg/websearch"
)

func newLLMManager(ctx context.Context, cfg *config.Config, logger log.Logger, recorder metrics.Recorder) (*llmprovider.Manager, error) {
	providers, initErrs, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	for _, e := range initErrs {
		logger.Warnf(ctx, "LLM provider skipped: %v", e)
	}
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	retryDelay, err := parseDuration(cfg.LLM.RetryDelay, time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}

	return llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
		Observer:        recorder,
	}, logger), nil
}

// newSearchChain assembles SerpAPI → Google → DuckDuckGo. Unconfigured
// providers are left out; the built-in keyword list always answers last.
func newSearchChain(ctx context.Context, cfg *config.Config, logger log.Logger, recorder metrics.Recorder) (*websearch.Chain, error) {
	var providers []websearch.Provider

	if serp := websearch.NewSerpAPI(cfg.WebSearch.SerpAPIKey, cfg.WebSearch.Timeout); serp != nil {
		providers = append(providers, serp)
	}

	google, err := websearch.NewGoogle(ctx, cfg.WebSearch.GoogleAPIKey, cfg.WebSearch.GoogleCX)
	if err != nil {
		return nil, err
	}
	if google != nil {
		providers = append(providers, google)
	}

	providers = append(providers, websearch.NewDuckDuckGo(cfg.WebSearch.Timeout))

	for _, p := range providers {
		logger.Infof(ctx, "Web search provider enabled: %s", p.Name())
	}
	return websearch.New(logger, recorder, providers...), nil
}

// backends bundles the session store, locker and optional upload repository
// together with the resources they hold.
type backends struct {
	store     session.Store
	locker    session.Locker
	repo      repository.Repository
	readiness map[string]httpserver.ReadinessCheck
	closers   []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func newBackends(ctx context.Context, cfg *config.Config, logger log.Logger) (*backends, error) {
	b := &backends{readiness: make(map[string]httpserver.ReadinessCheck)}

	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		b.closers = append(b.closers, func() { rdb.Close() })
		b.readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		b.store = sessionRedis.New(logger, rdb, cfg.Session.TTL)
		// Keyed first, so same-instance waiters queue in process and never poll redis.
		b.locker = session.ChainLocker{
			session.NewKeyedLocker(),
			sessionRedis.NewLocker(logger, rdb, cfg.Session.LockTTL),
		}
		logger.Infof(ctx, "Session backend: redis (%s)", cfg.Redis.Addr)
	default:
		b.store = memory.New(cfg.Session.MaxSessions, cfg.Session.TTL)
		b.locker = session.NewKeyedLocker()
		logger.Infof(ctx, "Session backend: memory (max %d)", cfg.Session.MaxSessions)
	}

	if cfg.Postgres.DSN == "" {
		logger.Info(ctx, "Postgres DSN not configured, upload metadata will not be stored")
		return b, nil
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	b.closers = append(b.closers, pool.Close)
	b.readiness["postgres"] = pool.Ping

	if err := resumeRepo.Migrate(ctx, pool, logger); err != nil {
		b.Close()
		return nil, err
	}
	b.repo = resumeRepo.New(pool, logger)
	logger.Info(ctx, "Postgres upload repository enabled")
	return b, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
