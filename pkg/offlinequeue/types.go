package offlinequeue

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks an operation through the queue.
type Status string

const (
	// StatusPending means the operation awaits submission.
	StatusPending Status = "pending"
	// StatusInflight means a flusher is currently submitting the operation.
	StatusInflight Status = "inflight"
	// StatusCompleted means the operation was accepted by the backend.
	StatusCompleted Status = "completed"
	// StatusDead means the operation exhausted its attempts and requires
	// manual inspection.
	StatusDead Status = "dead"
)

// DefaultMaxAttempts is the per-operation retry budget.
const DefaultMaxAttempts int8 = 3

// Op is a mutation captured while the backend was unreachable, to be
// replayed in order once connectivity returns.
type Op struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Payload     []byte    `json:"payload,omitempty"`
	Status      Status    `json:"status"`
	Attempts    int8      `json:"attempts"`
	MaxAttempts int8      `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}
