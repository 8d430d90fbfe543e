package platform

import "time"

// Config holds connection settings for the hosted backend, populated from the
// environment via pkg/config.
type Config struct {
	// BaseURL is the root URL of the hosted project, e.g. "https://xyz.example.co".
	BaseURL string `env:"PLATFORM_URL,required"`

	// AnonKey is the public API key sent with every request.
	AnonKey string `env:"PLATFORM_ANON_KEY,required"`

	// RequestTimeout bounds a single HTTP request at the transport level.
	// Callers apply their own, tighter race timeouts on top.
	RequestTimeout time.Duration `env:"PLATFORM_REQUEST_TIMEOUT" envDefault:"10s"`

	// EventBuffer is the per-subscriber buffer for the auth event feed.
	EventBuffer int `env:"PLATFORM_EVENT_BUFFER" envDefault:"16"`
}

// DefaultConfig returns settings suitable for tests and local development.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 10 * time.Second,
		EventBuffer:    16,
	}
}
