package invalidation

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultWarmInterval is how often the warmer re-primes entries.
const DefaultWarmInterval = 10 * time.Minute

// WarmFunc re-primes a single cache entry, typically by fetching fresh data
// and writing it through the cache.
type WarmFunc func(ctx context.Context, key string) error

// KeySource supplies the set of keys to warm on each run, e.g.
// Registry.AllKeys or a closure over a fixed list.
type KeySource func() []string

// Warmer periodically re-primes cache entries so reads stay warm across TTL
// boundaries. Runs never overlap: a tick that arrives while a run is still
// in flight is skipped.
type Warmer struct {
	fn       WarmFunc
	keys     KeySource
	interval time.Duration
	log      *slog.Logger

	running atomic.Bool
	ticker  *time.Ticker
	done    chan struct{}
	started atomic.Bool
}

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer)

// WithWarmInterval sets the period between warming runs.
func WithWarmInterval(d time.Duration) WarmerOption {
	return func(w *Warmer) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithWarmerLogger sets the warmer's logger.
func WithWarmerLogger(log *slog.Logger) WarmerOption {
	return func(w *Warmer) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWarmer creates a warmer. Panics when fn or keys is nil.
func NewWarmer(fn WarmFunc, keys KeySource, opts ...WarmerOption) *Warmer {
	if fn == nil {
		panic("invalidation: warm func is required")
	}
	if keys == nil {
		panic("invalidation: key source is required")
	}

	w := &Warmer{
		fn:       fn,
		keys:     keys,
		interval: DefaultWarmInterval,
		log:      slog.Default(),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start launches the periodic warming loop. Calling Start more than once is
// a no-op.
func (w *Warmer) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}

	w.ticker = time.NewTicker(w.interval)
	go w.loop()
}

// WarmNow runs one warming pass immediately. Returns ErrWarmInProgress when
// a pass is already running. Individual key failures are logged and counted,
// not fatal; the number of successfully warmed keys is returned.
func (w *Warmer) WarmNow(ctx context.Context) (int, error) {
	if !w.running.CompareAndSwap(false, true) {
		return 0, ErrWarmInProgress
	}
	defer w.running.Store(false)

	warmed := 0
	for _, key := range w.keys() {
		select {
		case <-ctx.Done():
			return warmed, ctx.Err()
		default:
		}

		if err := w.fn(ctx, key); err != nil {
			w.log.WarnContext(ctx, "cache warm failed", slog.String("key", key), slog.Any("error", err))
			continue
		}
		warmed++
	}

	return warmed, nil
}

// Close stops the periodic loop. Safe to call multiple times and before Start.
func (w *Warmer) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}

	close(w.done)
	if w.ticker != nil {
		w.ticker.Stop()
	}
	return nil
}

func (w *Warmer) loop() {
	for {
		select {
		case <-w.ticker.C:
			if _, err := w.WarmNow(context.Background()); err != nil && err != ErrWarmInProgress {
				w.log.Warn("warming run aborted", slog.Any("error", err))
			}
		case <-w.done:
			return
		}
	}
}
