package middleware

import (
	"resume-optimizer/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// Config is the dependency bag passed to New().
type Config struct {
	// RateLimitPerMin caps requests per client on rate-limited routes;
	// zero disables limiting.
	RateLimitPerMin int
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{l: l}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}
