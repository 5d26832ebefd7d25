package postgre

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"resume-optimizer/internal/resume/repository"
	"resume-optimizer/pkg/log"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type implRepository struct {
	db DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed Repository for the resume domain.
func New(db DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("resume/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("resume/repository/postgre.%s", method)
}
