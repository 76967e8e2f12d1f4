package notify

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBuffer = 32

// MemoryBroker delivers notifications inside one process. Slow subscribers
// lose messages instead of blocking publishers.
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Notification
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]chan Notification)}
}

var _ Broker = (*MemoryBroker)(nil)

func (b *MemoryBroker) Publish(_ context.Context, n Notification) error {
	n = n.withDefaults()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- n:
		default:
			slog.Warn("notification dropped for slow subscriber", "subscriber", id, "notification_id", n.ID)
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan Notification, func()) {
	ch := make(chan Notification, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	return nil
}
