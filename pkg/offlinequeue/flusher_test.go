package offlinequeue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayinspect/inspectkit/pkg/offlinequeue"
)

func newFlushFixture(t *testing.T, submit offlinequeue.SubmitFunc, opts ...offlinequeue.QueueOption) (*offlinequeue.Queue, *offlinequeue.Flusher) {
	t.Helper()

	q, err := offlinequeue.NewQueue(offlinequeue.NewMemoryStore(), opts...)
	require.NoError(t, err)

	f, err := offlinequeue.NewFlusher(q.Store(), submit, nil)
	require.NoError(t, err)
	return q, f
}

func TestNewFlusher_Validation(t *testing.T) {
	t.Parallel()

	_, err := offlinequeue.NewFlusher(nil, func(ctx context.Context, name string, payload []byte) error { return nil }, nil)
	assert.ErrorIs(t, err, offlinequeue.ErrStoreNil)

	_, err = offlinequeue.NewFlusher(offlinequeue.NewMemoryStore(), nil, nil)
	assert.ErrorIs(t, err, offlinequeue.ErrSubmitNil)
}

func TestFlusher_DrainsInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var replayed []string
	q, f := newFlushFixture(t, func(ctx context.Context, name string, payload []byte) error {
		var s submission
		require.NoError(t, json.Unmarshal(payload, &s))
		replayed = append(replayed, s.Field)
		return nil
	})

	for _, field := range []string{"roof", "kitchen", "garage"} {
		_, err := q.Enqueue(ctx, "inspection.submit", submission{Field: field})
		require.NoError(t, err)
	}

	completed, err := f.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, completed)
	assert.Equal(t, []string{"roof", "kitchen", "garage"}, replayed)

	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestFlusher_RetryableFailureStopsFlush(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wantErr := errors.New("still offline")

	calls := 0
	q, f := newFlushFixture(t, func(ctx context.Context, name string, payload []byte) error {
		calls++
		return wantErr
	})

	_, err := q.Enqueue(ctx, "first", submission{})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "second", submission{})
	require.NoError(t, err)

	completed, err := f.Flush(ctx)
	assert.ErrorIs(t, err, wantErr)
	assert.Zero(t, completed)
	assert.Equal(t, 1, calls, "flush must stop at the first failure to preserve order")

	// Both operations are still pending for the next flush.
	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
}

func TestFlusher_DeadLettersAfterBudget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	q, f := newFlushFixture(t,
		func(ctx context.Context, name string, payload []byte) error {
			if name == "poison" {
				return errors.New("always rejected")
			}
			return nil
		},
		offlinequeue.WithMaxAttempts(2),
	)

	_, err := q.Enqueue(ctx, "poison", submission{})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "healthy", submission{})
	require.NoError(t, err)

	// First flush: poison fails (attempt 1), goes back to pending, flush stops.
	completed, err := f.Flush(ctx)
	assert.Error(t, err)
	assert.Zero(t, completed)

	// Second flush: poison fails again (attempt 2), is dead-lettered, and
	// the healthy operation proceeds.
	completed, err = f.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	dead, err := q.Store().Dead(ctx)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, "poison", dead[0].Name)
	assert.Equal(t, offlinequeue.StatusDead, dead[0].Status)
	assert.Equal(t, int8(2), dead[0].Attempts)
	assert.NotEmpty(t, dead[0].LastError)
}

func TestFlusher_CancelledContext(t *testing.T) {
	t.Parallel()

	q, f := newFlushFixture(t, func(ctx context.Context, name string, payload []byte) error {
		return nil
	})

	_, err := q.Enqueue(context.Background(), "op", submission{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Flush(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
