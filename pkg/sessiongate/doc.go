// Package sessiongate owns the one-time-per-cycle sequence that determines
// whether a session exists and what role it carries.
//
// The gate's defining discipline is bounded-latency resolution under all
// failure modes: the session fetch is raced against a fixed timeout (3s by
// default), every failure path terminates in a settled State with Loading
// false and a populated Err message, and nothing the gate does can leave a
// caller permanently pending. Errors become state, not return values, so
// consumers render a deterministic loading / error / ready machine without an
// error path of their own.
//
// Concurrency contract: concurrent Initialize calls collapse onto a single
// in-flight cycle — the handle is checked and set synchronously before any
// suspension point — and exactly one session fetch is issued per cycle. Role
// determination is cache-first; on a miss the fallback role is applied
// immediately and a background refinement swaps in the authoritative role
// after Loading has already turned false. Consumers must tolerate that
// post-load role change (observable via Subscribe); whichever write lands
// last is authoritative for the displayed role.
//
// Typical wiring:
//
//	client, _ := platform.NewHTTPClient(cfg)
//	resolver := rolecache.NewResolver(rolecache.New(), client.UserRole)
//	gate := sessiongate.New(client, resolver)
//
//	go gate.Run(ctx) // follow the auth-state feed
//	state := gate.Initialize(ctx)
package sessiongate
