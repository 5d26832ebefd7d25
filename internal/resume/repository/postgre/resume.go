package postgre

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"resume-optimizer/internal/resume"
	repo "resume-optimizer/internal/resume/repository"
)

// CreateResume inserts a new Resume row and returns the created entity.
func (r *implRepository) CreateResume(ctx context.Context, opt repo.CreateResumeOptions) (resume.Resume, error) {
	const query = `
		INSERT INTO resumes (filename, file_url, linkedin_url, github_url, leetcode_url, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NOW())
		RETURNING id, filename, file_url, COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
			COALESCE(leetcode_url, ''), created_at`

	var res resume.Resume
	err := r.db.QueryRow(ctx, query, opt.FileName, opt.FileURL, opt.LinkedInURL, opt.GitHubURL, opt.LeetCodeURL).Scan(
		&res.ID, &res.FileName, &res.FileURL, &res.LinkedInURL, &res.GitHubURL, &res.LeetCodeURL, &res.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateResume"), err)
		return resume.Resume{}, repo.ErrFailedToInsert
	}
	return res, nil
}

// GetResume returns a zero-value Resume (ID == 0) when the row does not exist.
func (r *implRepository) GetResume(ctx context.Context, id int64) (resume.Resume, error) {
	const query = `
		SELECT id, filename, file_url, COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
			COALESCE(leetcode_url, ''), created_at
		FROM resumes WHERE id = $1`

	var res resume.Resume
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.FileName, &res.FileURL, &res.LinkedInURL, &res.GitHubURL, &res.LeetCodeURL, &res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.Resume{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetResume"), err)
		return resume.Resume{}, repo.ErrFailedToGet
	}
	return res, nil
}
