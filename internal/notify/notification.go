// Package notify carries in-app notifications from state changes to
// connected clients over a publish/subscribe broker.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAlert Type = "alert"
	TypeChat  Type = "chat"
)

// Notification is the message schema shared by every broker.
// An empty RecipientID means broadcast; ExcludeUserID hides it from one user.
type Notification struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Link          string    `json:"link,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	RecipientID   string    `json:"recipient_id,omitempty"`
	ExcludeUserID string    `json:"exclude_user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// VisibleTo reports whether userID should see n. Anonymous viewers only see
// broadcasts.
func (n Notification) VisibleTo(userID string) bool {
	if n.RecipientID != "" {
		return n.RecipientID == userID
	}
	return userID == "" || n.ExcludeUserID != userID
}

func (n Notification) withDefaults() Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Type == "" {
		n.Type = TypeAlert
	}
	return n
}

// Broker fans notifications out to subscribers.
type Broker interface {
	Publish(ctx context.Context, n Notification) error
	// Subscribe returns a channel that receives every notification published
	// after the call. The channel is closed after cancel or when ctx ends.
	Subscribe(ctx context.Context) (<-chan Notification, func())
	Close() error
}
