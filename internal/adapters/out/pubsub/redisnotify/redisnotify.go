// Package redisnotify carries order changes over Redis pub/sub.
package redisnotify

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/adapters/out/pubsub"
	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Transport is both the notifier and the feed; instances sharing a Redis server
// see each other's changes.
type Transport struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func New(client *redis.Client, logger *slog.Logger) *Transport {
	return &Transport{
		client:  client,
		channel: pubsub.Channel,
		logger:  logger.With("component", "redis_change_feed"),
	}
}

func (t *Transport) Notify(ctx context.Context, change ports.OrderChange) error {
	payload, err := pubsub.Encode(change)
	if err != nil {
		return err
	}
	if err = t.client.Publish(ctx, t.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Listen subscribes and blocks until ctx is done or the subscription closes.
func (t *Transport) Listen(ctx context.Context, handle func(ports.OrderChange)) error {
	sub := t.client.Subscribe(ctx, t.channel)
	defer func() { _ = sub.Close() }()

	// Wait for the subscription confirmation so a Notify issued right after
	// Listen started is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe %s: %w", t.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis subscription %s closed", t.channel)
			}
			change, err := pubsub.Decode(msg.Payload)
			if err != nil {
				t.logger.Warn("ignoring malformed message", "error", err)
				continue
			}
			handle(change)
		}
	}
}
