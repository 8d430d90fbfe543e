// Package broadcast implements a small in-memory fan-out primitive used to
// deliver auth-state changes and cache-invalidation events to interested
// components.
//
// Publishing is non-blocking: a subscription whose buffer is full misses the
// event and is detached, so a stalled consumer can never back-pressure the
// auth pipeline. Subscriptions are cleaned up automatically when their
// context is cancelled and are guaranteed to be closed exactly once.
package broadcast
