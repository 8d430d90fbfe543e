package async

import "errors"

var (
	// ErrTimeout indicates the computation did not settle within the allotted time.
	ErrTimeout = errors.New("async: operation timed out waiting for future completion")
)
