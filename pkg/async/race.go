package async

import (
	"context"
	"time"
)

// RaceFallback runs fn and races it against the given timeout. It returns
// fn's value when fn completes in time without an error. In every other case
// (fn errors, fn exceeds the timeout, or the context is cancelled) it returns
// the fallback value together with the reason the fallback was chosen.
//
// The second return value is a degradation reason, not a failure: callers
// always receive a usable value and may treat a non-nil reason as advisory.
// When the timeout wins the race, fn keeps running to completion in the
// background and its late result is discarded, so RaceFallback is only
// suitable for read-only, idempotent operations.
func RaceFallback[T any](ctx context.Context, timeout time.Duration, fallback T, fn func(context.Context) (T, error)) (T, error) {
	value, err := Go(ctx, fn).AwaitWithTimeout(timeout)
	if err != nil {
		return fallback, err
	}
	return value, nil
}
