package rolecache

import "time"

// Default behavior constants for role resolution.
const (
	// DefaultTTL is how long a cached role is trusted without a remote re-check.
	DefaultTTL = 5 * time.Minute

	// DefaultLookupTimeout bounds a single remote role lookup.
	DefaultLookupTimeout = 1500 * time.Millisecond

	// DefaultFallbackRole is substituted whenever authoritative resolution
	// cannot complete in time or fails.
	DefaultFallbackRole = "inspector"
)

// CachedRole is a role value cached for a user with an absolute expiry.
type CachedRole struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCachedRole creates an entry expiring ttl from now.
func NewCachedRole(userID, role string, ttl time.Duration) *CachedRole {
	return &CachedRole{
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiry. An expired entry is
// treated as a cache miss, never as an error.
func (c *CachedRole) IsExpired() bool {
	return c == nil || !time.Now().Before(c.ExpiresAt)
}
