package http

import (
	"resume-optimizer/internal/resume"
	"resume-optimizer/pkg/log"
)

type handler struct {
	l  log.Logger
	uc resume.UseCase
}

// New creates a new HTTP handler for the resume domain.
func New(l log.Logger, uc resume.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
