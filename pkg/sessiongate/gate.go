package sessiongate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stayinspect/inspectkit/pkg/async"
	"github.com/stayinspect/inspectkit/pkg/broadcast"
	"github.com/stayinspect/inspectkit/pkg/platform"
	"github.com/stayinspect/inspectkit/pkg/rolecache"
	"github.com/stayinspect/inspectkit/pkg/roles"
)

// Gate coordinates session initialization: it determines whether a session
// exists and what role it carries, guaranteeing idempotency (at most one
// in-flight initialization) and bounded latency (every path settles within
// the session timeout). See the package documentation for the full contract.
type Gate struct {
	client     platform.Client
	resolver   *rolecache.Resolver
	authorizer roles.Authorizer
	timeout    time.Duration
	log        *slog.Logger
	changes    *broadcast.Broadcaster[State]

	mu       sync.Mutex
	state    State
	inflight *async.Future[State]
}

// Option configures a Gate.
type Option func(*Gate)

// WithSessionTimeout bounds the session fetch. Defaults to DefaultSessionTimeout.
func WithSessionTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the gate's logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAuthorizer enables permission checks against the resolved role.
func WithAuthorizer(a roles.Authorizer) Option {
	return func(g *Gate) { g.authorizer = a }
}

// New creates a gate over the given platform client and role resolver.
// Panics on nil collaborators: the gate cannot operate without them and
// misconfiguration should fail at startup.
func New(client platform.Client, resolver *rolecache.Resolver, opts ...Option) *Gate {
	if client == nil {
		panic("sessiongate: platform client is required")
	}
	if resolver == nil {
		panic("sessiongate: role resolver is required")
	}

	g := &Gate{
		client:   client,
		resolver: resolver,
		timeout:  DefaultSessionTimeout,
		log:      slog.Default(),
		changes:  broadcast.New[State](16),
		state:    State{Loading: true},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// State returns the current session snapshot.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe delivers a snapshot on every state change, including the silent
// role swap performed by background refinement.
func (g *Gate) Subscribe(ctx context.Context) *broadcast.Subscription[State] {
	return g.changes.Subscribe(ctx)
}

// Initialize runs the initialization sequence and returns the settled state.
// Concurrent calls collapse onto a single underlying session fetch: the
// in-flight handle is checked and set under the lock before any suspension
// point, so overlapping callers share one cycle and simply wait for it.
// Initialize never fails; failures surface inside the returned State.
func (g *Gate) Initialize(ctx context.Context) State {
	g.mu.Lock()
	if g.inflight != nil {
		f := g.inflight
		g.mu.Unlock()
		return g.await(f)
	}

	f := async.Go(ctx, func(ctx context.Context) (State, error) {
		return g.initialize(ctx), nil
	})
	g.inflight = f
	g.mu.Unlock()

	// Release the handle once the cycle settles so a later forced refresh
	// can start a new one.
	go func() {
		_, _ = f.Await()
		g.mu.Lock()
		if g.inflight == f {
			g.inflight = nil
		}
		g.mu.Unlock()
	}()

	return g.await(f)
}

// Refresh forces a new initialization cycle, abandoning any in-flight handle.
func (g *Gate) Refresh(ctx context.Context) State {
	g.mu.Lock()
	g.inflight = nil
	g.state.Loading = true
	st := g.state
	g.mu.Unlock()
	g.changes.Publish(st)

	return g.Initialize(ctx)
}

// Run subscribes to the platform's auth-state feed and re-applies the
// cache-or-fallback-then-refine logic on every delivered event. It blocks
// until ctx is cancelled or the feed closes; the subscription is released
// exactly once on the way out.
func (g *Gate) Run(ctx context.Context) error {
	sub := g.client.Events().Subscribe(ctx)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-sub.C():
			if !ok {
				return nil
			}
			g.handleEvent(ctx, ev)
		}
	}
}

// SignOut clears the session: it removes the user's cached role, asks the
// platform to drop its stored tokens, and resets the state to an
// unauthenticated, error-annotated snapshot.
func (g *Gate) SignOut(ctx context.Context) State {
	g.mu.Lock()
	user := g.state.User
	g.mu.Unlock()

	if user != nil {
		g.resolver.Cache().Invalidate(ctx, user.ID.String())
	}

	if err := g.client.ClearTokens(ctx); err != nil {
		g.log.WarnContext(ctx, "failed to clear platform tokens", slog.Any("error", err))
	}

	st := State{Err: MsgSessionCleared}
	g.setState(st)
	return st
}

// Can checks the current role against the configured authorizer. Returns
// roles.ErrNoAuthorizer when permission checking was not enabled.
func (g *Gate) Can(permission string) error {
	if g.authorizer == nil {
		return roles.ErrNoAuthorizer
	}
	return g.authorizer.Can(g.State().Role, permission)
}

// await unwraps a future's state, falling back to the current state when the
// awaiting context was cancelled before the cycle ran.
func (g *Gate) await(f *async.Future[State]) State {
	st, err := f.Await()
	if err != nil {
		return g.State()
	}
	return st
}

// initialize is one full cycle: session fetch raced against the timeout,
// then role determination. Always returns a settled (non-loading) state.
func (g *Gate) initialize(ctx context.Context) State {
	sess, reason := async.RaceFallback[*platform.Session](ctx, g.timeout, nil,
		func(ctx context.Context) (*platform.Session, error) {
			return g.client.Session(ctx)
		})
	if reason != nil {
		g.log.WarnContext(ctx, "session fetch failed or timed out", slog.Any("reason", reason))
		st := State{Err: MsgAuthFailed}
		g.setState(st)
		return st
	}

	if sess == nil || sess.User == nil {
		st := State{}
		g.setState(st)
		return st
	}

	return g.applySession(ctx, sess.User)
}

// applySession resolves the role for a present session cache-first: a cached
// hit is applied immediately; on a miss the fallback default is applied so
// the state is never blank, and background refinement fetches the
// authoritative role after Loading has already flipped false.
func (g *Gate) applySession(ctx context.Context, user *platform.Identity) State {
	userID := user.ID.String()

	role, cached := g.resolver.Cache().Cached(ctx, userID)
	if !cached {
		role = g.resolver.Fallback()
	}

	st := State{User: user, Role: role}
	g.setState(st)

	if !cached {
		go g.refine(userID)
	}

	return st
}

// refine fetches the authoritative role in the background and applies it
// last-write-wins, provided the same user is still signed in.
func (g *Gate) refine(userID string) {
	res := g.resolver.Resolve(context.Background(), userID, false)

	g.mu.Lock()
	if g.state.User == nil || g.state.User.ID.String() != userID || g.state.Role == res.Role {
		g.mu.Unlock()
		return
	}
	g.state.Role = res.Role
	st := g.state
	g.mu.Unlock()

	g.changes.Publish(st)
}

// handleEvent applies an auth-state change from the platform feed.
func (g *Gate) handleEvent(ctx context.Context, ev platform.AuthEvent) {
	if ev.Type == platform.EventSignedOut || ev.Session == nil || ev.Session.User == nil {
		g.mu.Lock()
		alreadyOut := g.state.User == nil && !g.state.Loading
		g.mu.Unlock()
		if alreadyOut {
			// Idempotent: an explicit SignOut already settled the state and
			// its explanatory message should survive the echoed feed event.
			return
		}
		g.setState(State{})
		return
	}

	g.applySession(ctx, ev.Session.User)
}

func (g *Gate) setState(st State) {
	g.mu.Lock()
	g.state = st
	g.mu.Unlock()
	g.changes.Publish(st)
}

// Close shuts down the state-change feed.
func (g *Gate) Close() error {
	return g.changes.Close()
}
