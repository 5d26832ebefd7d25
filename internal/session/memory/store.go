package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/session"
)

const (
	DefaultMaxSessions = 1000
	DefaultTTL         = 24 * time.Hour
)

// Store keeps sessions in an expiring LRU. Sessions are cloned on the way in
// and out so callers never share transcripts.
type Store struct {
	cache *expirable.LRU[string, *agent.Session]
}

var _ session.Store = (*Store)(nil)

func New(maxSessions int, ttl time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, *agent.Session](maxSessions, nil, ttl),
	}
}

func (s *Store) GetOrCreate(_ context.Context, id string) (*agent.Session, bool, error) {
	id = session.ResolveID(id)
	if sess, ok := s.cache.Get(id); ok {
		return sess.Clone(), false, nil
	}
	return agent.NewSession(id), true, nil
}

func (s *Store) Save(_ context.Context, sess *agent.Session) error {
	if sess == nil || sess.ID == "" {
		return session.ErrInvalidState
	}
	s.cache.Add(sess.ID, sess.Clone())
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
