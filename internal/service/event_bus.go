package service

import (
	"sync"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/metrics"

	"github.com/rs/zerolog"
)

// DefaultEventCapacity is the number of entries retained for replay.
const DefaultEventCapacity = 1000

// EventBus implements ports.EventStream with a bounded ring and live fan-out.
// Subscribers that fall behind lose entries instead of blocking publishers.
type EventBus struct {
	mu sync.Mutex
	// ring holds count entries starting at head, oldest first.
	ring   []domain.LogEntry
	head   int
	count  int
	nextID uint64
	subs   map[chan domain.LogEntry]struct{}
	now    func() time.Time
	log    zerolog.Logger
}

// NewEventBus creates an event bus retaining up to capacity entries.
func NewEventBus(capacity int, log zerolog.Logger) *EventBus {
	if capacity < 1 {
		capacity = DefaultEventCapacity
	}
	return &EventBus{
		ring: make([]domain.LogEntry, capacity),
		subs: make(map[chan domain.LogEntry]struct{}),
		now:  time.Now,
		log:  log,
	}
}

// Publish appends an entry and delivers it to every live subscriber.
func (b *EventBus) Publish(category, message string, data interface{}) domain.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	entry := domain.LogEntry{
		ID:       b.nextID,
		Time:     b.now().UTC(),
		Category: category,
		Message:  message,
		Data:     data,
	}

	if b.count == len(b.ring) {
		b.ring[b.head] = entry
		b.head = (b.head + 1) % len(b.ring)
	} else {
		b.ring[(b.head+b.count)%len(b.ring)] = entry
		b.count++
	}

	for ch := range b.subs {
		select {
		case ch <- entry:
		default:
			// drop for slow consumer
		}
	}

	b.log.Debug().
		Uint64("id", entry.ID).
		Str("category", category).
		Msg(message)
	return entry
}

// Recent returns up to n of the newest entries, oldest first.
func (b *EventBus) Recent(n int) []domain.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.recentLocked(n)
}

func (b *EventBus) recentLocked(n int) []domain.LogEntry {
	if n <= 0 || n > b.count {
		n = b.count
	}
	out := make([]domain.LogEntry, n)
	start := b.head + b.count - n
	for i := range out {
		out[i] = b.ring[(start+i)%len(b.ring)]
	}
	return out
}

// Subscribe registers a live subscriber. The replay and the registration happen under
// the same lock, so every entry is either in replay or delivered on live, never both.
func (b *EventBus) Subscribe(buffer int) ([]domain.LogEntry, <-chan domain.LogEntry, func()) {
	if buffer < 1 {
		buffer = 64
	}
	ch := make(chan domain.LogEntry, buffer)

	b.mu.Lock()
	replay := b.recentLocked(0)
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	metrics.EventSubscribers.Inc()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
			b.mu.Unlock()
			metrics.EventSubscribers.Dec()
		})
	}
	return replay, ch, unsubscribe
}

// Subscribers returns the number of live subscribers.
func (b *EventBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
