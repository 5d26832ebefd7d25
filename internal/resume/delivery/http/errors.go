package http

import (
	"errors"
	"net/http"
	"strings"

	"resume-optimizer/internal/resume"
	pkgErrors "resume-optimizer/pkg/errors"
	"resume-optimizer/pkg/response"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, resume.ErrNotPDF):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Only PDF files are allowed.")
	case errors.Is(err, resume.ErrInvalidFilename):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid file name")
	case errors.Is(err, resume.ErrFileNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "File not found")
	case errors.Is(err, resume.ErrSessionBusy):
		return pkgErrors.NewHTTPError(http.StatusConflict, "Session is busy with another request, retry shortly.")
	case errors.Is(err, resume.ErrExtraction):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Text extraction failed: "+detail(err, resume.ErrExtraction))
	case errors.Is(err, resume.ErrStepLimit):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "AI processing exceeded the step limit")
	case errors.Is(err, resume.ErrModel):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "AI processing failed: "+detail(err, resume.ErrModel))
	default:
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}

// detail strips the sentinel prefix from a "%w: %v" wrapped error.
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
