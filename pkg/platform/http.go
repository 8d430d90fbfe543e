package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/stayinspect/inspectkit/pkg/broadcast"
)

// HTTPClient implements Client against the hosted backend's REST surface:
// the auth endpoint for session lookups and the RPC endpoint for role
// lookups. It keeps the platform's session tokens locally so ClearTokens can
// remove them alongside the cached role, mirroring what the hosted SDK
// stores in its own two ambient keys.
type HTTPClient struct {
	baseURL string
	anonKey string
	http    *http.Client
	events  *broadcast.Broadcaster[AuthEvent]

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewHTTPClient creates a client from the given config.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = DefaultConfig().EventBuffer
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().RequestTimeout
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
		events:  broadcast.New[AuthEvent](buffer),
	}, nil
}

// SetTokens installs session tokens obtained out of band (sign-in, token
// refresh) and announces the change on the event feed.
func (c *HTTPClient) SetTokens(access, refresh string, session *Session) {
	c.mu.Lock()
	refreshed := c.accessToken != ""
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()

	ev := AuthEvent{Type: EventSignedIn, Session: session}
	if refreshed {
		ev.Type = EventTokenRefreshed
	}
	c.events.Publish(ev)
}

// Session returns the current session, or (nil, nil) when no token is held
// or the backend rejects the token as unauthenticated.
func (c *HTTPClient) Session(ctx context.Context) (*Session, error) {
	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()

	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from auth endpoint", ErrUnexpectedStatus, resp.StatusCode)
	}

	var user Identity
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}

	return &Session{User: &user}, nil
}

// UserRole calls the role-lookup RPC. The RPC returns the role as a bare
// JSON string.
func (c *HTTPClient) UserRole(ctx context.Context, userID string) (string, error) {
	payload, err := json.Marshal(map[string]string{"uid": userID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/rpc/get_user_role", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()
	c.applyHeaders(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d from role rpc", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var role string
	if err := json.Unmarshal(body, &role); err != nil {
		return "", errors.Join(ErrMalformedResponse, err)
	}

	return role, nil
}

// ClearTokens drops both stored tokens and announces the sign-out. It never
// fails: there is nothing sensible for a caller to do with a local-clear
// error.
func (c *HTTPClient) ClearTokens(ctx context.Context) error {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()

	c.events.Publish(AuthEvent{Type: EventSignedOut})
	return nil
}

// Events returns the auth-state change feed.
func (c *HTTPClient) Events() *broadcast.Broadcaster[AuthEvent] {
	return c.events
}

// Close shuts down the event feed.
func (c *HTTPClient) Close() error {
	return c.events.Close()
}

func (c *HTTPClient) applyHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
