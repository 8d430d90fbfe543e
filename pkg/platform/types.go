package platform

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated user record returned by the platform.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}

// Session represents an active authentication session on the platform.
type Session struct {
	User      *Identity `json:"user"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// EventType classifies auth-state changes delivered by the platform feed.
type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

// AuthEvent is delivered whenever the platform's authentication state
// changes. Session is nil for sign-out events.
type AuthEvent struct {
	Type    EventType
	Session *Session
}
