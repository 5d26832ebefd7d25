package session

import (
	"context"

	"resume-optimizer/internal/agent"
)

//go:generate mockery --name Store
type Store interface {
	// GetOrCreate loads the session or starts an empty one. created is true
	// for new sessions. An empty id generates a fresh one.
	GetOrCreate(ctx context.Context, id string) (s *agent.Session, created bool, err error)
	Save(ctx context.Context, s *agent.Session) error
	Delete(ctx context.Context, id string) error
}

// Locker serializes runs on the same session id.
type Locker interface {
	// Lock blocks until the id is free or ctx is done.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}
