package offlinequeue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Queue captures mutations while the backend is unreachable.
type Queue struct {
	store       Store
	maxAttempts int8
	log         *slog.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithMaxAttempts sets the per-operation retry budget.
func WithMaxAttempts(n int8) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.maxAttempts = n
		}
	}
}

// WithQueueLogger sets the queue's logger.
func WithQueueLogger(log *slog.Logger) QueueOption {
	return func(q *Queue) {
		if log != nil {
			q.log = log
		}
	}
}

// NewQueue creates a queue over the given store.
func NewQueue(store Store, opts ...QueueOption) (*Queue, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	q := &Queue{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		log:         slog.Default(),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q, nil
}

// Enqueue captures one named mutation. The payload is serialized to JSON at
// enqueue time so replays are immune to later mutation of the value.
func (q *Queue) Enqueue(ctx context.Context, name string, payload any) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, ErrNameEmpty
	}
	if payload == nil {
		return uuid.Nil, ErrPayloadNil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, err
	}

	op := &Op{
		ID:          uuid.New(),
		Name:        name,
		Payload:     raw,
		Status:      StatusPending,
		MaxAttempts: q.maxAttempts,
		EnqueuedAt:  time.Now(),
	}

	if err := q.store.Append(ctx, op); err != nil {
		return uuid.Nil, err
	}

	q.log.DebugContext(ctx, "operation queued",
		slog.String("op_id", op.ID.String()), slog.String("name", name))
	return op.ID, nil
}

// Pending returns the number of operations waiting for submission.
func (q *Queue) Pending(ctx context.Context) (int, error) {
	return q.store.CountPending(ctx)
}

// Store exposes the backing store, for wiring a Flusher over the same data.
func (q *Queue) Store() Store {
	return q.store
}
