package offlinequeue

import "context"

// Store persists queued operations. Implementations must be safe for
// concurrent use and must hand out pending operations in enqueue order so
// replayed mutations apply in the order the user performed them.
type Store interface {
	// Append adds a new operation to the tail of the queue.
	Append(ctx context.Context, op *Op) error

	// NextPending returns the oldest pending operation and marks it
	// inflight. Returns ErrNoPending when none remain.
	NextPending(ctx context.Context) (*Op, error)

	// Update rewrites an operation's mutable fields (status, attempts,
	// last error).
	Update(ctx context.Context, op *Op) error

	// CountPending returns the number of operations waiting for submission.
	CountPending(ctx context.Context) (int, error)

	// Dead returns operations that exhausted their attempts.
	Dead(ctx context.Context) ([]*Op, error)
}
