// Package rolecache resolves and caches per-user roles with bounded latency.
//
// The inspection platform looks roles up through a remote RPC that can be
// slow or unavailable. This package shields callers from that by layering
// three sources behind one entry point, Resolver.Resolve:
//
//  1. A persisted cache entry, trusted for a fixed TTL (5 minutes by
//     default) and checked lazily on read — an expired entry is an ordinary
//     miss, never an error.
//  2. The remote lookup, raced against a fixed timeout (1.5s by default).
//  3. A fallback default role ("inspector") substituted when the lookup is
//     slow, failing, or empty.
//
// Resolution is total: Resolve always produces a role, and the Resolution
// result type records whether the value is authoritative or degraded so
// callers handle the fallback case explicitly instead of by convention. The
// deliberate trade-off is that a user may briefly be shown a stale or
// fallback role while the backend is degraded, in exchange for the UI never
// blocking on role lookups.
//
// Two store backends are provided: MemoryStore for single-process use and
// RedisStore for sharing the cache across processes. Concurrent writers of
// the same key are harmless — the data is read-mostly and idempotent, so the
// last write simply resets the expiry window.
package rolecache
