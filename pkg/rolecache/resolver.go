package rolecache

import (
	"context"
	"log/slog"
	"time"

	"github.com/stayinspect/inspectkit/pkg/async"
)

// LookupFunc fetches a user's authoritative role from the remote service.
type LookupFunc func(ctx context.Context, userID string) (string, error)

// Source identifies where a resolved role came from.
type Source string

const (
	// SourceCache means the role was served from an unexpired cache entry.
	SourceCache Source = "cache"
	// SourceRemote means the role was fetched fresh from the remote service.
	SourceRemote Source = "remote"
	// SourceFallback means resolution degraded to the configured default.
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of a role lookup. Resolution is total: there is
// always a usable Role, so callers need no error path for normal fallback
// behavior. Reason is populated only when Source is SourceFallback and
// records why resolution degraded.
type Resolution struct {
	Role   string
	Source Source
	Reason error
}

// Degraded reports whether the role is the fallback rather than an
// authoritative value.
func (r Resolution) Degraded() bool {
	return r.Source == SourceFallback
}

// Resolver performs bounded-latency role resolution: cache first, then a
// remote lookup raced against a fixed timeout, then the fallback default.
type Resolver struct {
	cache    *Cache
	lookup   LookupFunc
	timeout  time.Duration
	fallback string
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLookupTimeout bounds the remote lookup. Defaults to DefaultLookupTimeout.
func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithFallbackRole sets the role substituted when resolution degrades.
func WithFallbackRole(role string) ResolverOption {
	return func(r *Resolver) {
		if role != "" {
			r.fallback = role
		}
	}
}

// WithResolverLogger sets the logger for degradation warnings.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver over the given cache and remote lookup.
// Panics if lookup is nil: a resolver without a remote path can never refine
// the fallback and is always a wiring mistake.
func NewResolver(cache *Cache, lookup LookupFunc, opts ...ResolverOption) *Resolver {
	if lookup == nil {
		panic(ErrNoLookup)
	}

	r := &Resolver{
		cache:    cache,
		lookup:   lookup,
		timeout:  DefaultLookupTimeout,
		fallback: DefaultFallbackRole,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cache == nil {
		r.cache = New()
	}

	return r
}

// Cache returns the resolver's underlying role cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Fallback returns the configured fallback role.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// Resolve returns the user's role. With useCache, an unexpired cache entry is
// returned immediately without touching the network. Otherwise the remote
// lookup is raced against the resolver's timeout; a slow, failing, or empty
// lookup degrades to the fallback role. Fresh remote values are written back
// to the cache before returning.
//
// Resolve never fails from the caller's perspective: every path produces a
// role string within roughly one lookup timeout.
func (r *Resolver) Resolve(ctx context.Context, userID string, useCache bool) Resolution {
	if useCache {
		if role, ok := r.cache.Cached(ctx, userID); ok {
			return Resolution{Role: role, Source: SourceCache}
		}
	}

	role, reason := async.RaceFallback(ctx, r.timeout, r.fallback, func(ctx context.Context) (string, error) {
		return r.lookup(ctx, userID)
	})
	if reason != nil {
		r.log.WarnContext(ctx, "role lookup degraded to fallback",
			slog.String("user_id", userID),
			slog.String("fallback", r.fallback),
			slog.Any("reason", reason))
		return Resolution{Role: r.fallback, Source: SourceFallback, Reason: reason}
	}

	if role == "" {
		r.log.WarnContext(ctx, "role lookup returned empty role, using fallback",
			slog.String("user_id", userID))
		return Resolution{Role: r.fallback, Source: SourceFallback, Reason: ErrEmptyRole}
	}

	r.cache.Put(ctx, userID, role)
	return Resolution{Role: role, Source: SourceRemote}
}
