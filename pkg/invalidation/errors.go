package invalidation

import "errors"

var (
	// ErrWarmInProgress indicates a warming pass is already running.
	ErrWarmInProgress = errors.New("invalidation.warm_in_progress")
)
