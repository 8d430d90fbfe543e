package rolecache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stayinspect/inspectkit/pkg/rolecache"
)

// faultyStore wraps a real store and fails operations on demand.
type faultyStore struct {
	inner   rolecache.Store
	getErr  error
	setErr  error
	delErr  error
	mu      sync.Mutex
	setHits int
}

func (s *faultyStore) Get(ctx context.Context, userID string) (*rolecache.CachedRole, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.inner.Get(ctx, userID)
}

func (s *faultyStore) Set(ctx context.Context, entry *rolecache.CachedRole) error {
	s.mu.Lock()
	s.setHits++
	s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	return s.inner.Set(ctx, entry)
}

func (s *faultyStore) Delete(ctx context.Context, userID string) error {
	if s.delErr != nil {
		return s.delErr
	}
	return s.inner.Delete(ctx, userID)
}

// stubLookup is a LookupFunc with scriptable latency, result, and call count.
type stubLookup struct {
	role  string
	err   error
	delay time.Duration
	hang  bool
	calls atomic.Int32
}

func (l *stubLookup) fn(ctx context.Context, userID string) (string, error) {
	l.calls.Add(1)
	if l.hang {
		select {} // never returns
	}
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	return l.role, l.err
}
