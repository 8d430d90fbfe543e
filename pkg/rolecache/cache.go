package rolecache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Cache answers "what is this user's role?" from the persistent store,
// shielding callers from both remote latency and storage failures. Reads and
// writes never propagate storage errors: a failed read is a miss, a failed
// write is logged and ignored, because the cache is an optimization rather
// than a correctness requirement.
type Cache struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore sets the persistence backend. Defaults to an in-memory store
// with the cache TTL as its sweep interval.
func WithStore(store Store) Option {
	return func(c *Cache) { c.store = store }
}

// WithTTL sets how long cached roles are trusted.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for cache warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a role cache with the given options.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl: DefaultTTL,
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewMemoryStore(c.ttl)
	}

	return c
}

// TTL returns the configured cache duration.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Cached returns the user's cached role when a valid, unexpired entry exists.
// It never returns an error: read failures and malformed entries are logged
// as warnings and reported as a miss.
func (c *Cache) Cached(ctx context.Context, userID string) (string, bool) {
	entry, err := c.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.WarnContext(ctx, "role cache read failed, treating as miss",
				slog.String("user_id", userID), slog.Any("error", err))
		}
		return "", false
	}

	if entry.IsExpired() {
		return "", false
	}

	return entry.Role, true
}

// Put persists the user's role with an expiry of now + TTL. Persistence
// failures are swallowed and logged; they never interrupt the caller.
func (c *Cache) Put(ctx context.Context, userID, role string) {
	if err := c.store.Set(ctx, NewCachedRole(userID, role, c.ttl)); err != nil {
		c.log.WarnContext(ctx, "role cache write failed",
			slog.String("user_id", userID), slog.Any("error", err))
	}
}

// Invalidate removes the user's cached role. Failures are logged, not returned.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	if err := c.store.Delete(ctx, userID); err != nil {
		c.log.WarnContext(ctx, "role cache invalidation failed",
			slog.String("user_id", userID), slog.Any("error", err))
	}
}
