package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

const redisChannel = "lovemypet:notifications"

// RedisBroker publishes over Redis pub/sub so every API instance sees
// notifications raised by any other.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(ctx context.Context, url string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisBroker{client: client}, nil
}

var _ Broker = (*RedisBroker)(nil)

func (b *RedisBroker) Publish(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n.withDefaults())
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, redisChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan Notification, func()) {
	ps := b.client.Subscribe(ctx, redisChannel)
	out := make(chan Notification, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			var n Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				slog.Warn("invalid notification payload", "error", err)
				continue
			}
			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		ps.Close()
	}()

	return out, func() { ps.Close() }
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
