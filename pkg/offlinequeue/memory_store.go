package offlinequeue

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process FIFO. Order is the order
// of Append calls.
type MemoryStore struct {
	mu    sync.Mutex
	order []uuid.UUID
	ops   map[uuid.UUID]*Op
}

// NewMemoryStore creates an empty in-memory queue store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ops: make(map[uuid.UUID]*Op)}
}

// Append adds a new operation to the tail of the queue.
func (s *MemoryStore) Append(ctx context.Context, op *Op) error {
	if op == nil || op.ID == uuid.Nil {
		return ErrPayloadNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *op
	s.ops[op.ID] = &cp
	s.order = append(s.order, op.ID)
	return nil
}

// NextPending returns the oldest pending operation and marks it inflight.
func (s *MemoryStore) NextPending(ctx context.Context) (*Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		op := s.ops[id]
		if op.Status == StatusPending {
			op.Status = StatusInflight
			cp := *op
			return &cp, nil
		}
	}

	return nil, ErrNoPending
}

// Update rewrites an operation's mutable fields.
func (s *MemoryStore) Update(ctx context.Context, op *Op) error {
	if op == nil || op.ID == uuid.Nil {
		return ErrPayloadNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ops[op.ID]
	if !ok {
		return ErrNoPending
	}

	stored.Status = op.Status
	stored.Attempts = op.Attempts
	stored.LastError = op.LastError
	return nil
}

// CountPending returns the number of pending operations.
func (s *MemoryStore) CountPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, op := range s.ops {
		if op.Status == StatusPending {
			n++
		}
	}
	return n, nil
}

// Dead returns operations that exhausted their attempts, oldest first.
func (s *MemoryStore) Dead(ctx context.Context) ([]*Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dead []*Op
	for _, id := range s.order {
		if op := s.ops[id]; op.Status == StatusDead {
			cp := *op
			dead = append(dead, &cp)
		}
	}
	return dead, nil
}
