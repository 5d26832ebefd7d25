package http

import (
	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Only the optimize endpoint is rate limited and size capped.
func RegisterRoutes(r gin.IRouter, h *handler, mw middleware.Middleware, maxUploadBytes int64) {
	r.POST("/optimize_resume", mw.RateLimit(), mw.MaxBodySize(maxUploadBytes), h.Optimize)
	r.GET("/download_optimized/:filename", h.Download)
}
