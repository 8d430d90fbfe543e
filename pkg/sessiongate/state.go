package sessiongate

import (
	"time"

	"github.com/stayinspect/inspectkit/pkg/platform"
)

// Default behavior constants for session initialization.
const (
	// DefaultSessionTimeout bounds the session fetch during initialization.
	DefaultSessionTimeout = 3 * time.Second
)

// User-visible messages carried in State.Err. Failures become state, not
// errors: the gate never returns an error to its caller.
const (
	// MsgAuthFailed is set when the session fetch times out or fails.
	MsgAuthFailed = "Authentication failed - please try signing in"

	// MsgSessionCleared is set after an explicit clear-session action.
	MsgSessionCleared = "Session cleared - please sign in again"
)

// State is a snapshot of the session as the UI should render it. It forms a
// small deterministic machine — loading, error, unauthenticated, ready — and
// every failure path inside the gate terminates in one of those, never in a
// permanently pending state.
type State struct {
	// User is the authenticated identity, nil when signed out.
	User *platform.Identity

	// Role is the user's resolved role. While a user is present and Loading
	// is false, Role always holds a value: cached, freshly fetched, or the
	// fallback default. It may change asynchronously after Loading flips
	// false as background refinement lands (last write wins).
	Role string

	// Loading is true until the initialization sequence settles.
	Loading bool

	// Err is a human-readable description of the last failure, empty when
	// the state is healthy.
	Err string
}

// Authenticated reports whether a user is present.
func (s State) Authenticated() bool {
	return s.User != nil
}
