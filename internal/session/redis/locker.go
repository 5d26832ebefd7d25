package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"resume-optimizer/internal/session"
	pkgLog "resume-optimizer/pkg/log"
)

const (
	lockPrefix       = "resume-optimizer:lock:"
	DefaultLockTTL   = 5 * time.Minute
	lockRetryBackoff = 50 * time.Millisecond
)

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

// Locker is a distributed per-session lock for multi-instance deployments.
// The key expires after ttl so a crashed holder cannot wedge a session.
type Locker struct {
	cli redis.UniversalClient
	ttl time.Duration
	l   pkgLog.Logger
}

var _ session.Locker = (*Locker)(nil)

func NewLocker(l pkgLog.Logger, cli redis.UniversalClient, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Locker{cli: cli, ttl: ttl, l: l}
}

// Lock polls SETNX until the key is free. Only running out of ctx while
// another holder keeps the key reports ErrSessionBusy; a redis failure is
// returned as is.
func (lk *Locker) Lock(ctx context.Context, id string) (func(), error) {
	key := lockPrefix + id
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetryBackoff)
	defer ticker.Stop()
	for {
		ok, err := lk.cli.SetNX(ctx, key, token, lk.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", session.ErrSessionBusy, ctx.Err())
			}
			lk.l.Errorf(ctx, "internal.session.redis.Lock: setnx %s: %v", id, err)
			return nil, fmt.Errorf("failed to acquire session lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", session.ErrSessionBusy, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// The request context may already be gone; unlock on a fresh one.
		uctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := luaUnlock.Run(uctx, lk.cli, []string{key}, token).Err(); err != nil && err != redis.Nil {
			lk.l.Warnf(uctx, "internal.session.redis.Unlock: %s: %v", id, err)
		}
	}, nil
}
