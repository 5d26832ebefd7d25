package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/middleware"
	"resume-optimizer/internal/resume"
	"resume-optimizer/pkg/log"
)

const (
	DefaultMaxUploadMB     = 10
	DefaultShutdownTimeout = 15 * time.Second
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Middleware
	mw             middleware.Middleware
	maxUploadBytes int64

	// Resume domain
	resumeUC resume.UseCase

	// Readiness probes, keyed by dependency name
	readiness map[string]ReadinessCheck
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	MaxUploadMB     int
	RateLimitPerMin int

	// Resume domain
	ResumeUseCase resume.UseCase

	// Readiness probes; /ready fails while any of them fails.
	Readiness map[string]ReadinessCheck
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	maxUpload := cfg.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadMB
	}

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		mw:             middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.RateLimitPerMin}),
		maxUploadBytes: int64(maxUpload) << 20,
		resumeUC:       cfg.ResumeUseCase,
		readiness:      cfg.Readiness,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.resumeUC == nil {
		return errors.New("resume use case is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
