package invalidation_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayinspect/inspectkit/pkg/invalidation"
	"github.com/stayinspect/inspectkit/pkg/rolecache"
)

func seedStore(t *testing.T, userIDs ...string) *rolecache.MemoryStore {
	t.Helper()

	store := rolecache.NewMemoryStore(0)
	for _, id := range userIDs {
		require.NoError(t, store.Set(context.Background(), rolecache.NewCachedRole(id, "inspector", time.Hour)))
	}
	return store
}

func TestRegistry_InvalidateKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seedStore(t, "user-1", "user-2")
	reg := invalidation.NewRegistry(store)
	defer reg.Close()

	reg.Register("user-1", "roles")
	reg.Register("user-2", "roles")

	sub := reg.Events().Subscribe(ctx)
	defer sub.Close()

	require.NoError(t, reg.InvalidateKey(ctx, "user-1"))

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, rolecache.ErrNotFound)

	// The other entry is untouched.
	_, err = store.Get(ctx, "user-2")
	assert.NoError(t, err)

	// Subscribers observe the invalidation.
	select {
	case ev := <-sub.C():
		assert.Equal(t, invalidation.KindKey, ev.Kind)
		assert.Equal(t, "user-1", ev.Key)
	case <-time.After(time.Second):
		t.Fatal("invalidation event not delivered")
	}

	// The key is unregistered from its tags.
	assert.ElementsMatch(t, []string{"user-2"}, reg.Keys("roles"))
}

func TestRegistry_InvalidateTag(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seedStore(t, "user-1", "user-2", "user-3")
	reg := invalidation.NewRegistry(store)
	defer reg.Close()

	reg.Register("user-1", "roles", "property:42")
	reg.Register("user-2", "roles")
	reg.Register("user-3", "property:42")

	removed, err := reg.InvalidateTag(ctx, "property:42")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for _, id := range []string{"user-1", "user-3"} {
		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, rolecache.ErrNotFound, id)
	}
	_, err = store.Get(ctx, "user-2")
	assert.NoError(t, err)

	// user-1 left the "roles" tag too when it was unregistered.
	assert.ElementsMatch(t, []string{"user-2"}, reg.Keys("roles"))
	assert.Empty(t, reg.Keys("property:42"))
}

func TestRegistry_InvalidateUnknownTag(t *testing.T) {
	t.Parallel()

	reg := invalidation.NewRegistry(seedStore(t))
	defer reg.Close()

	removed, err := reg.InvalidateTag(context.Background(), "nope")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRegistry_RegisterAccumulatesTags(t *testing.T) {
	t.Parallel()

	reg := invalidation.NewRegistry(seedStore(t, "user-1"))
	defer reg.Close()

	reg.Register("user-1", "roles")
	reg.Register("user-1", "property:42")

	assert.ElementsMatch(t, []string{"user-1"}, reg.Keys("roles"))
	assert.ElementsMatch(t, []string{"user-1"}, reg.Keys("property:42"))
	assert.ElementsMatch(t, []string{"user-1"}, reg.AllKeys())
}

func TestWarmer_WarmNow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("warms every key", func(t *testing.T) {
		t.Parallel()

		warmed := make(map[string]int)
		w := invalidation.NewWarmer(
			func(ctx context.Context, key string) error {
				warmed[key]++
				return nil
			},
			func() []string { return []string{"a", "b", "c"} },
		)
		defer w.Close()

		n, err := w.WarmNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, warmed)
	})

	t.Run("individual failures are skipped", func(t *testing.T) {
		t.Parallel()

		w := invalidation.NewWarmer(
			func(ctx context.Context, key string) error {
				if key == "b" {
					return assert.AnError
				}
				return nil
			},
			func() []string { return []string{"a", "b", "c"} },
		)
		defer w.Close()

		n, err := w.WarmNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("concurrent passes do not overlap", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		started := make(chan struct{})
		w := invalidation.NewWarmer(
			func(ctx context.Context, key string) error {
				close(started)
				<-release
				return nil
			},
			func() []string { return []string{"a"} },
		)
		defer w.Close()

		go func() { _, _ = w.WarmNow(ctx) }()
		<-started

		_, err := w.WarmNow(ctx)
		assert.ErrorIs(t, err, invalidation.ErrWarmInProgress)
		close(release)
	})
}

func TestWarmer_PeriodicLoop(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	w := invalidation.NewWarmer(
		func(ctx context.Context, key string) error {
			runs.Add(1)
			return nil
		},
		func() []string { return []string{"a"} },
		invalidation.WithWarmInterval(20*time.Millisecond),
	)
	defer w.Close()

	w.Start()
	w.Start() // second Start is a no-op

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close()) // idempotent
}
