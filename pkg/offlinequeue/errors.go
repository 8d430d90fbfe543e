package offlinequeue

import "errors"

var (
	// ErrPayloadNil indicates Enqueue was called with a nil payload.
	ErrPayloadNil = errors.New("offlinequeue.payload_nil")

	// ErrNameEmpty indicates Enqueue was called without an operation name.
	ErrNameEmpty = errors.New("offlinequeue.name_empty")

	// ErrStoreNil indicates construction without a backing store.
	ErrStoreNil = errors.New("offlinequeue.store_nil")

	// ErrSubmitNil indicates a flusher was constructed without a submit function.
	ErrSubmitNil = errors.New("offlinequeue.submit_nil")

	// ErrNoPending indicates the store holds no pending operations.
	ErrNoPending = errors.New("offlinequeue.no_pending")
)
