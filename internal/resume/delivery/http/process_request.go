package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "resume-optimizer/pkg/errors"
)

// processOptimizeReq binds the multipart form and reads the uploaded file.
func (h *handler) processOptimizeReq(c *gin.Context) (optimizeReq, error) {
	var req optimizeReq
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
		}
		return req, err
	}

	f, err := req.File.Open()
	if err != nil {
		return req, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	req.content, err = io.ReadAll(f)
	if err != nil {
		return req, fmt.Errorf("read upload: %w", err)
	}
	return req, nil
}
