package broadcast

import (
	"context"
	"sync"
)

// Subscription receives events published on a Broadcaster.
type Subscription[T any] struct {
	ch     chan T
	closed bool
	mu     sync.RWMutex
}

// C returns the channel events are delivered on. The channel is closed when
// the subscription is closed.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close terminates the subscription. It is idempotent.
func (s *Subscription[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers an event without blocking. Returns false if the subscription
// is closed or its buffer is full.
func (s *Subscription[T]) send(ev T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Broadcaster fans events out to any number of subscriptions. Publishing
// never blocks: subscriptions whose buffers are full miss the event and are
// dropped. All methods are safe for concurrent use.
type Broadcaster[T any] struct {
	subs      map[*Subscription[T]]struct{}
	buffer    int
	closed    bool
	mu        sync.RWMutex
	cleanupWg sync.WaitGroup
}

// New creates a broadcaster whose subscriptions buffer up to buffer events.
// A minimum buffer of 1 is enforced so sends are never unconditionally
// blocking.
func New[T any](buffer int) *Broadcaster[T] {
	return &Broadcaster[T]{
		subs:   make(map[*Subscription[T]]struct{}),
		buffer: max(buffer, 1),
	}
}

// Subscribe registers a new subscription. The subscription is removed
// automatically when ctx is cancelled; callers that outlive their context
// should still Close the subscription explicitly. Subscribing to a closed
// broadcaster yields an already-closed subscription.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription[T]{ch: make(chan T, b.buffer)}
	if b.closed {
		_ = sub.Close()
		return sub
	}

	b.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			<-ctx.Done()
			b.remove(sub)
		}()
	}

	return sub
}

// Publish delivers ev to every live subscription. Slow subscribers are
// detached rather than blocking the publisher.
func (b *Broadcaster[T]) Publish(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for sub := range b.subs {
		if !sub.send(ev) {
			// Detach asynchronously to avoid taking the write lock here.
			go b.remove(sub)
		}
	}
}

// Close shuts down the broadcaster and closes every subscription. Safe to
// call multiple times.
func (b *Broadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		_ = sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()

	b.cleanupWg.Wait()
	return nil
}

func (b *Broadcaster[T]) remove(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, sub)
	_ = sub.Close()
}
