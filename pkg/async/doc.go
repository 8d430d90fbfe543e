// Package async provides small future and timeout-race primitives used by the
// session and role-resolution components.
//
// The central helper is RaceFallback, which bounds the latency of a remote
// lookup by racing it against a fixed timeout and substituting a caller
// supplied fallback value when the lookup is slow or failing. The losing
// operation is not cancelled at the transport layer; its eventual result is
// simply discarded, which is acceptable for idempotent read-only lookups and
// unsafe for mutations.
//
// Usage:
//
//	role, reason := async.RaceFallback(ctx, 1500*time.Millisecond, "inspector",
//		func(ctx context.Context) (string, error) {
//			return client.UserRole(ctx, userID)
//		})
//	if reason != nil {
//		// degraded: role holds the fallback, reason says why
//	}
package async
