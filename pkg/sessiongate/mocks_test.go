package sessiongate_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/stayinspect/inspectkit/pkg/broadcast"
	"github.com/stayinspect/inspectkit/pkg/platform"
)

// fakeClient is a scriptable platform.Client for gate tests.
type fakeClient struct {
	mu           sync.Mutex
	session      *platform.Session
	sessionErr   error
	sessionDelay time.Duration
	sessionHang  bool
	role         string
	roleErr      error
	roleDelay    time.Duration
	roleHang     bool

	sessionCalls atomic.Int32
	roleCalls    atomic.Int32
	clearCalls   atomic.Int32

	events *broadcast.Broadcaster[platform.AuthEvent]
}

func newFakeClient() *fakeClient {
	return &fakeClient{events: broadcast.New[platform.AuthEvent](16)}
}

func (f *fakeClient) withUser() (*fakeClient, *platform.Identity) {
	user := &platform.Identity{ID: uuid.New(), Email: "ins@example.com"}
	f.mu.Lock()
	f.session = &platform.Session{User: user}
	f.mu.Unlock()
	return f, user
}

func (f *fakeClient) Session(ctx context.Context) (*platform.Session, error) {
	f.sessionCalls.Add(1)
	if f.sessionHang {
		select {} // never returns
	}
	if f.sessionDelay > 0 {
		time.Sleep(f.sessionDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, f.sessionErr
}

func (f *fakeClient) UserRole(ctx context.Context, userID string) (string, error) {
	f.roleCalls.Add(1)
	if f.roleHang {
		select {}
	}
	if f.roleDelay > 0 {
		time.Sleep(f.roleDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.role, f.roleErr
}

func (f *fakeClient) ClearTokens(ctx context.Context) error {
	f.clearCalls.Add(1)
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	f.events.Publish(platform.AuthEvent{Type: platform.EventSignedOut})
	return nil
}

func (f *fakeClient) Events() *broadcast.Broadcaster[platform.AuthEvent] {
	return f.events
}
