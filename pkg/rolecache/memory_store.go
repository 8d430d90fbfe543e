package rolecache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. Expiry is checked
// lazily on read; an optional background sweep reclaims memory for entries
// that are never read again.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*CachedRole
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a periodic sweep of expired entries; zero disables it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*CachedRole),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.sweepLoop()
	}

	return s
}

// Get retrieves the entry for a user.
func (s *MemoryStore) Get(ctx context.Context, userID string) (*CachedRole, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	cp := *entry
	return &cp, nil
}

// Set persists an entry.
func (s *MemoryStore) Set(ctx context.Context, entry *CachedRole) error {
	if entry == nil || entry.UserID == "" {
		return ErrInvalidEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.entries[entry.UserID] = &cp
	return nil
}

// Delete removes the entry for a user.
func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep.
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *MemoryStore) sweepLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, entry := range s.entries {
		if entry.IsExpired() {
			delete(s.entries, userID)
		}
	}
}
