package platform

import (
	"context"

	"github.com/stayinspect/inspectkit/pkg/broadcast"
)

// Client is the narrow contract this module has with the hosted backend.
// The remote service is treated as a black box: single-attempt calls, no
// retries — bounded-latency discipline lives in the callers.
type Client interface {
	// Session returns the current session, or (nil, nil) when no user is
	// authenticated. May be slow or fail.
	Session(ctx context.Context) (*Session, error)

	// UserRole returns the role name for a user via the platform's
	// role-lookup RPC. May be slow or fail; an empty role with nil error is
	// possible and left to the caller to interpret.
	UserRole(ctx context.Context, userID string) (string, error)

	// ClearTokens removes the locally stored session tokens and announces a
	// sign-out on the event feed.
	ClearTokens(ctx context.Context) error

	// Events returns the broadcaster delivering auth-state changes
	// (sign-in, sign-out, token refresh).
	Events() *broadcast.Broadcaster[AuthEvent]
}
