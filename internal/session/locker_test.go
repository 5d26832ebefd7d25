package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedLocker_SerializesSameID(t *testing.T) {
	l := NewKeyedLocker()
	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "s1")
			if err != nil {
				t.Error(err)
				return
			}
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxActive)
	}
	if l.size() != 0 {
		t.Errorf("entries leaked: %d", l.size())
	}
}

func TestKeyedLocker_DifferentIDsInParallel(t *testing.T) {
	l := NewKeyedLocker()
	unlockA, err := l.Lock(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	if err != nil {
		t.Fatalf("lock on another id blocked: %v", err)
	}
	unlockB()
}

func TestKeyedLocker_ContextCancel(t *testing.T) {
	l := NewKeyedLocker()
	unlock, _ := l.Lock(context.Background(), "s")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "s"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("err = %v, want ErrSessionBusy", err)
	}

	unlock()
	unlock() // idempotent
	if l.size() != 0 {
		t.Errorf("entries leaked: %d", l.size())
	}
}

type recordingLocker struct {
	name string
	log  *[]string
	err  error
}

func (r recordingLocker) Lock(_ context.Context, _ string) (func(), error) {
	if r.err != nil {
		return nil, r.err
	}
	*r.log = append(*r.log, "lock "+r.name)
	return func() { *r.log = append(*r.log, "unlock "+r.name) }, nil
}

func TestChainLocker(t *testing.T) {
	var log []string
	chain := ChainLocker{recordingLocker{name: "a", log: &log}, nil, recordingLocker{name: "b", log: &log}}

	unlock, err := chain.Lock(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}
	unlock()

	want := []string{"lock a", "lock b", "unlock b", "unlock a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log = %v, want %v", log, want)
		}
	}

	log = nil
	failing := ChainLocker{recordingLocker{name: "a", log: &log}, recordingLocker{err: ErrSessionBusy}}
	if _, err := failing.Lock(context.Background(), "s"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("err = %v", err)
	}
	if len(log) != 2 || log[1] != "unlock a" {
		t.Errorf("first lock not released: %v", log)
	}
}

type countingLocker struct{ calls int32 }

func (c *countingLocker) Lock(_ context.Context, _ string) (func(), error) {
	atomic.AddInt32(&c.calls, 1)
	return func() {}, nil
}

func TestChainLocker_KeyedFirstShieldsBackend(t *testing.T) {
	backend := &countingLocker{}
	chain := ChainLocker{NewKeyedLocker(), backend}

	unlock, err := chain.Lock(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := chain.Lock(ctx, "s"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("err = %v, want ErrSessionBusy", err)
	}
	if n := atomic.LoadInt32(&backend.calls); n != 1 {
		t.Errorf("backend locked %d times, want 1 while the waiter queued in process", n)
	}

	unlock()
	unlock2, err := chain.Lock(context.Background(), "s")
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	unlock2()
	if n := atomic.LoadInt32(&backend.calls); n != 2 {
		t.Errorf("backend locked %d times, want 2", n)
	}
}

func TestResolveID(t *testing.T) {
	if ResolveID("  abc ") != "abc" {
		t.Error("expected trimmed id")
	}
	if id := ResolveID(""); len(id) != 36 {
		t.Errorf("generated id = %q", id)
	}
}
