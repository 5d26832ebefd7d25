package postgre

import (
	"context"

	"resume-optimizer/internal/resume/repository"
	"resume-optimizer/pkg/log"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS resumes (
		id         BIGSERIAL PRIMARY KEY,
		filename   TEXT NOT NULL,
		file_url   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE resumes ADD COLUMN IF NOT EXISTS linkedin_url TEXT`,
	`ALTER TABLE resumes ADD COLUMN IF NOT EXISTS github_url TEXT`,
	`ALTER TABLE resumes ADD COLUMN IF NOT EXISTS leetcode_url TEXT`,
}

// Migrate creates the resumes table and adds the profile URL columns.
// Every statement is idempotent, so it runs on each startup.
func Migrate(ctx context.Context, db DB, l log.Logger) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			l.Errorf(ctx, "resume/repository/postgre.Migrate: %v", err)
			return repository.ErrFailedToMigrate
		}
	}
	l.Infof(ctx, "resume/repository/postgre.Migrate: %d statements applied", len(migrations))
	return nil
}
