package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/session"
	pkgLog "resume-optimizer/pkg/log"
)

const (
	keyPrefix  = "resume-optimizer:session:"
	DefaultTTL = 24 * time.Hour
)

// Client is the subset of *redis.Client the store needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// storedSession is the JSON layout in redis. Turns use the loose external
// message shape and are normalized on load.
type storedSession struct {
	ID             string             `json:"id"`
	Messages       []agent.RawMessage `json:"messages"`
	Resume         string             `json:"resume,omitempty"`
	JobDescription string             `json:"job_description,omitempty"`
	ResumeFileName string             `json:"resume_file_name,omitempty"`
	Profile        agent.ProfileURLs  `json:"profile"`
	ContextFrom    int                `json:"context_from,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Store persists sessions as JSON values with a TTL.
type Store struct {
	cli Client
	ttl time.Duration
	l   pkgLog.Logger
}

var _ session.Store = (*Store)(nil)

func New(l pkgLog.Logger, cli Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cli: cli, ttl: ttl, l: l}
}

func sessionKey(id string) string { return keyPrefix + id }

func (s *Store) GetOrCreate(ctx context.Context, id string) (*agent.Session, bool, error) {
	id = session.ResolveID(id)

	raw, err := s.cli.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return agent.NewSession(id), true, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.session.redis.GetOrCreate: get %s: %v", id, err)
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.l.Errorf(ctx, "internal.session.redis.GetOrCreate: decode %s: %v", id, err)
		return nil, false, fmt.Errorf("%w: %v", session.ErrInvalidState, err)
	}

	return &agent.Session{
		ID:             id,
		Turns:          agent.NormalizeTurns(stored.Messages),
		Resume:         stored.Resume,
		JobDescription: stored.JobDescription,
		ResumeFileName: stored.ResumeFileName,
		Profile:        stored.Profile,
		ContextFrom:    stored.ContextFrom,
		CreatedAt:      stored.CreatedAt,
		UpdatedAt:      stored.UpdatedAt,
	}, false, nil
}

func (s *Store) Save(ctx context.Context, sess *agent.Session) error {
	if sess == nil || sess.ID == "" {
		return session.ErrInvalidState
	}

	raw, err := json.Marshal(storedSession{
		ID:             sess.ID,
		Messages:       agent.ToRawMessages(sess.Turns),
		Resume:         sess.Resume,
		JobDescription: sess.JobDescription,
		ResumeFileName: sess.ResumeFileName,
		Profile:        sess.Profile,
		ContextFrom:    sess.ContextFrom,
		CreatedAt:      sess.CreatedAt,
		UpdatedAt:      sess.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.cli.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		s.l.Errorf(ctx, "internal.session.redis.Save: set %s: %v", sess.ID, err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cli.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
