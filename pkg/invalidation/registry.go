package invalidation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stayinspect/inspectkit/pkg/broadcast"
	"github.com/stayinspect/inspectkit/pkg/rolecache"
)

// Kind classifies invalidation events.
type Kind string

const (
	// KindKey is a single-entry invalidation.
	KindKey Kind = "key"
	// KindTag is a group invalidation of every key registered under a tag.
	KindTag Kind = "tag"
)

// Event announces that cached data has been invalidated so interested
// components can drop derived state or re-warm.
type Event struct {
	Kind Kind
	Key  string
	Tag  string
	At   time.Time
}

// Registry tracks cache keys grouped by tags and invalidates them against a
// backing store. Tags let callers expire whole families of entries at once
// ("all roles", "property:42") without enumerating keys themselves.
type Registry struct {
	store  rolecache.Store
	log    *slog.Logger
	events *broadcast.Broadcaster[Event]

	mu    sync.Mutex
	byTag map[string]map[string]struct{}
	byKey map[string]map[string]struct{}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the registry's logger.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates a registry over the given store. Panics on a nil
// store; a registry with nothing to invalidate is a wiring mistake.
func NewRegistry(store rolecache.Store, opts ...RegistryOption) *Registry {
	if store == nil {
		panic("invalidation: store is required")
	}

	r := &Registry{
		store:  store,
		log:    slog.Default(),
		events: broadcast.New[Event](16),
		byTag:  make(map[string]map[string]struct{}),
		byKey:  make(map[string]map[string]struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register associates a key with the given tags. Registering an existing key
// adds tags rather than replacing them.
func (r *Registry) Register(key string, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byKey[key] == nil {
		r.byKey[key] = make(map[string]struct{})
	}
	for _, tag := range tags {
		if r.byTag[tag] == nil {
			r.byTag[tag] = make(map[string]struct{})
		}
		r.byTag[tag][key] = struct{}{}
		r.byKey[key][tag] = struct{}{}
	}
}

// Keys returns the keys currently registered under a tag.
func (r *Registry) Keys(tag string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.byTag[tag]))
	for key := range r.byTag[tag] {
		keys = append(keys, key)
	}
	return keys
}

// AllKeys returns every registered key.
func (r *Registry) AllKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.byKey))
	for key := range r.byKey {
		keys = append(keys, key)
	}
	return keys
}

// InvalidateKey removes one entry from the store, unregisters the key, and
// broadcasts the invalidation.
func (r *Registry) InvalidateKey(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, key); err != nil {
		return err
	}

	r.unregister(key)
	r.events.Publish(Event{Kind: KindKey, Key: key, At: time.Now()})
	return nil
}

// InvalidateTag removes every entry registered under the tag. Deletion
// continues past individual failures; the first error is returned along with
// the count of entries actually removed.
func (r *Registry) InvalidateTag(ctx context.Context, tag string) (int, error) {
	keys := r.Keys(tag)

	var firstErr error
	removed := 0
	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			r.log.WarnContext(ctx, "tag invalidation: delete failed",
				slog.String("tag", tag), slog.String("key", key), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		r.unregister(key)
		removed++
	}

	r.events.Publish(Event{Kind: KindTag, Tag: tag, At: time.Now()})
	return removed, firstErr
}

// Events returns the invalidation event feed.
func (r *Registry) Events() *broadcast.Broadcaster[Event] {
	return r.events
}

// Close shuts down the event feed.
func (r *Registry) Close() error {
	return r.events.Close()
}

func (r *Registry) unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tag := range r.byKey[key] {
		delete(r.byTag[tag], key)
		if len(r.byTag[tag]) == 0 {
			delete(r.byTag, tag)
		}
	}
	delete(r.byKey, key)
}
