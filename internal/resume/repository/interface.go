package repository

import (
	"context"

	"resume-optimizer/internal/resume"
)

// Repository is the composed interface for the resume domain data store.
type Repository interface {
	ResumeRepository
}

// ResumeRepository defines data access for upload metadata.
type ResumeRepository interface {
	CreateResume(ctx context.Context, opt CreateResumeOptions) (resume.Resume, error)
	GetResume(ctx context.Context, id int64) (resume.Resume, error)
}
