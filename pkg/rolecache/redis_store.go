package rolecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces role entries in a shared Redis database.
const DefaultKeyPrefix = "rolecache:"

// RedisStore implements Store on top of a Redis database, letting multiple
// processes share one role cache. Entries carry a Redis TTL matching their
// expiry so Redis reclaims them on its own; IsExpired remains the source of
// truth for readers racing the TTL boundary.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store with the default key prefix.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{db: client, prefix: DefaultKeyPrefix}
}

// NewRedisStoreWithPrefix creates a Redis-backed store with a custom key prefix.
func NewRedisStoreWithPrefix(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{db: client, prefix: prefix}
}

// Get retrieves the entry for a user.
func (s *RedisStore) Get(ctx context.Context, userID string) (*CachedRole, error) {
	raw, err := s.db.Get(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var entry CachedRole
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, errors.Join(ErrInvalidEntry, err)
	}

	return &entry, nil
}

// Set persists an entry with a TTL derived from its expiry. Entries already
// past expiry are dropped rather than written.
func (s *RedisStore) Set(ctx context.Context, entry *CachedRole) error {
	if entry == nil || entry.UserID == "" {
		return ErrInvalidEntry
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, entry.UserID)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Join(ErrInvalidEntry, err)
	}

	return s.db.Set(ctx, s.prefix+entry.UserID, raw, ttl).Err()
}

// Delete removes the entry for a user.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	return s.db.Del(ctx, s.prefix+userID).Err()
}
