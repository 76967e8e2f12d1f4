package notify

import (
	"context"
	"sync"
	"time"
)

type toast struct {
	n         Notification
	expiresAt time.Time
	// dismissed holds the members who closed this toast.
	dismissed map[string]struct{}
}

// Toasts keeps recently published notifications until they auto-dismiss
// after ttl. A member dismissing a toast only hides it for themselves.
type Toasts struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []toast
}

func NewToasts(ttl time.Duration) *Toasts {
	return &Toasts{ttl: ttl, now: time.Now}
}

// Run consumes broker notifications until ctx ends.
func (t *Toasts) Run(ctx context.Context, b Broker) {
	ch, cancel := b.Subscribe(ctx)
	defer cancel()
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			t.Add(n)
		case <-ctx.Done():
			return
		}
	}
}

func (t *Toasts) Add(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, toast{n: n, expiresAt: t.now().Add(t.ttl)})
}

// Visible returns the live notifications userID may see, newest first.
func (t *Toasts) Visible(userID string) []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()

	out := make([]Notification, 0, len(t.items))
	for i := len(t.items) - 1; i >= 0; i-- {
		it := t.items[i]
		if !it.n.VisibleTo(userID) {
			continue
		}
		if _, gone := it.dismissed[userID]; gone && userID != "" {
			continue
		}
		out = append(out, it.n)
	}
	return out
}

// Dismiss hides notification id from userID. It reports false when userID
// has no live, undismissed notification with that id. Anonymous viewers
// cannot dismiss.
func (t *Toasts) Dismiss(userID, id string) bool {
	if userID == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()

	for i := range t.items {
		it := &t.items[i]
		if it.n.ID != id || !it.n.VisibleTo(userID) {
			continue
		}
		if _, gone := it.dismissed[userID]; gone {
			return false
		}
		if it.dismissed == nil {
			it.dismissed = make(map[string]struct{})
		}
		it.dismissed[userID] = struct{}{}
		return true
	}
	return false
}

func (t *Toasts) pruneLocked() {
	now := t.now()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.expiresAt) {
			kept = append(kept, it)
		}
	}
	t.items = kept
}
