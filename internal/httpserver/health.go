package httpserver

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Resume Optimizer API is running"
	HealthVersion = "1.0.0"
	ServiceName   = "resume-optimizer"

	readinessTimeout = 2 * time.Second
)

// ReadinessCheck probes one dependency, e.g. a Redis or Postgres ping.
type ReadinessCheck func(ctx context.Context) error

// rootCheck handles the landing route
// @Summary Root
// @Description Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service banner"
// @Router / [get]
func (srv HTTPServer) rootCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": HealthMessage})
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once every configured dependency answers.
// @Summary Readiness Check
// @Description Check if the API and its backing stores are ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "A dependency is unavailable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(srv.readiness))
	for name := range srv.readiness {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := srv.readiness[name](ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: %s: %v", name, err)
			deps[name] = err.Error()
			ready = false
			continue
		}
		deps[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "not ready",
			Data:      gin.H{"dependencies": deps},
		})
		return
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"message":      HealthMessage,
		"version":      HealthVersion,
		"service":      ServiceName,
		"dependencies": deps,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
