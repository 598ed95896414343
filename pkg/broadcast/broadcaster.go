package broadcast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultBufferSize is the per-subscriber event buffer used
// when no explicit size is configured.
const DefaultBufferSize = 64

// Subscription is a handle to a stream of future events. It
// stays live until the subscriber calls Close or falls so far
// behind that the broadcaster drops it.
type Subscription struct {
	id string
	ch chan Event

	b    *Broadcaster
	once sync.Once
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the channel events are delivered on. The
// channel is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close ends the subscription. Safe to call multiple times and
// concurrently with Publish.
func (s *Subscription) Close() {
	s.b.remove(s)
}

// Broadcaster fans events out to all current subscribers.
// Publication is fire-and-forget: a full subscriber buffer
// drops that subscriber instead of blocking the publisher,
// because dashboard freshness matters more than guaranteed
// delivery to a stalled client.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	buffer int
	closed bool
}

// NewBroadcaster creates a broadcaster with the given
// per-subscriber buffer size. Non-positive sizes fall back to
// DefaultBufferSize.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &Broadcaster{
		subs:   make(map[string]*Subscription),
		buffer: buffer,
	}
}

// Subscribe registers a new observer. The returned
// subscription receives all events published after this call.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		id: uuid.NewString(),
		ch: make(chan Event, b.buffer),
		b:  b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub
}

// Publish delivers the event to every subscriber without ever
// blocking. Subscribers whose buffers are full are dropped:
// their subscription is closed and removed.
func (b *Broadcaster) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	var overflowed []*Subscription

	b.mu.RLock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- ev:
		default:
			overflowed = append(overflowed, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range overflowed {
		b.remove(sub)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops all subscribers and rejects future ones. Events
// published after Close are discarded.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.subs = make(map[string]*Subscription)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() { close(sub.ch) })
	}
}

// remove detaches a subscription and closes its channel. The
// map delete happens under the write lock, which waits out any
// in-flight Publish holding the read lock, so the channel is
// never closed while a send can still reach it.
func (b *Broadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub.id)
	b.mu.Unlock()

	sub.once.Do(func() { close(sub.ch) })
}
