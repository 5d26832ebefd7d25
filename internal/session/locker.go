package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ResolveID trims id and generates one when it is blank.
func ResolveID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return NewID()
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedLocker is an in-process lock per session id. Entries are reference
// counted and removed once nobody holds or waits for them.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{entries: make(map[string]*keyedEntry)}
}

func (k *KeyedLocker) Lock(ctx context.Context, id string) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		k.entries[id] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(id, e)
		return nil, fmt.Errorf("%w: %v", ErrSessionBusy, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			k.release(id, e)
		})
	}, nil
}

func (k *KeyedLocker) release(id string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, id)
	}
}

// size is the number of live entries.
func (k *KeyedLocker) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// ChainLocker acquires every locker in order and releases in reverse. Put the
// in-process KeyedLocker first: waiters on the same instance then queue on it
// and never reach the next locker, so only one request per instance polls a
// shared backend such as redis.
type ChainLocker []Locker

func (c ChainLocker) Lock(ctx context.Context, id string) (func(), error) {
	unlocks := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, l := range c {
		if l == nil {
			continue
		}
		unlock, err := l.Lock(ctx, id)
		if err != nil {
			releaseAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return releaseAll, nil
}
