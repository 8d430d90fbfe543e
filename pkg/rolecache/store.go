package rolecache

import "context"

// Store defines the persistent key-value backend for cached roles.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the entry for a user. Returns ErrNotFound when absent.
	Get(ctx context.Context, userID string) (*CachedRole, error)

	// Set persists an entry, replacing any previous one for the same user.
	Set(ctx context.Context, entry *CachedRole) error

	// Delete removes the entry for a user. Deleting an absent entry is not
	// an error.
	Delete(ctx context.Context, userID string) error
}
