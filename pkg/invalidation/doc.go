// Package invalidation manages explicit cache invalidation and warming on
// top of the role cache's key-value stores.
//
// Time-based expiry handles the common case; this package covers the rest:
// administrative actions ("this user's role changed, drop it everywhere"),
// group expiry via tags, and proactive re-priming of hot entries so reads
// stay fast across TTL boundaries. Invalidations are announced on a
// broadcast feed so dashboards and sibling caches converge without polling.
package invalidation
