package offlinequeue

import (
	"context"
	"errors"
	"log/slog"
)

// SubmitFunc replays one captured operation against the backend. A nil
// return marks the operation completed; an error counts against its retry
// budget.
type SubmitFunc func(ctx context.Context, name string, payload []byte) error

// Flusher drains pending operations through a SubmitFunc once connectivity
// returns. Operations are submitted strictly in enqueue order; a failing
// operation goes back to pending (or dead once its budget is spent) and the
// flush stops so ordering is preserved on the next attempt.
type Flusher struct {
	store  Store
	submit SubmitFunc
	log    *slog.Logger
}

// NewFlusher creates a flusher over the given store.
func NewFlusher(store Store, submit SubmitFunc, log *slog.Logger) (*Flusher, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if submit == nil {
		return nil, ErrSubmitNil
	}
	if log == nil {
		log = slog.Default()
	}

	return &Flusher{store: store, submit: submit, log: log}, nil
}

// Flush submits pending operations until the store is drained, an operation
// fails, or ctx is cancelled. Returns the number of operations completed.
// A dead-lettered operation does not stop the flush: it can never succeed,
// so the next operation proceeds.
func (f *Flusher) Flush(ctx context.Context) (int, error) {
	completed := 0

	for {
		select {
		case <-ctx.Done():
			return completed, ctx.Err()
		default:
		}

		op, err := f.store.NextPending(ctx)
		if err != nil {
			if errors.Is(err, ErrNoPending) {
				return completed, nil
			}
			return completed, err
		}

		op.Attempts++

		if err := f.submit(ctx, op.Name, op.Payload); err != nil {
			op.LastError = err.Error()

			if op.Attempts >= op.MaxAttempts {
				op.Status = StatusDead
				f.log.WarnContext(ctx, "operation dead-lettered",
					slog.String("op_id", op.ID.String()),
					slog.String("name", op.Name),
					slog.Any("error", err))
				if uerr := f.store.Update(ctx, op); uerr != nil {
					return completed, uerr
				}
				continue
			}

			op.Status = StatusPending
			if uerr := f.store.Update(ctx, op); uerr != nil {
				return completed, uerr
			}

			// Stop here: replaying later operations before this one would
			// break ordering.
			return completed, err
		}

		op.Status = StatusCompleted
		op.LastError = ""
		if err := f.store.Update(ctx, op); err != nil {
			return completed, err
		}
		completed++
	}
}
