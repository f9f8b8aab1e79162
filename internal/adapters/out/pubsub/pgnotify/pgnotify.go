// Package pgnotify carries order changes over PostgreSQL LISTEN/NOTIFY so every
// instance sharing the database sees the writes of the others.
package pgnotify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/pubsub"
	"marketplace/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	minReconnectInterval = 100 * time.Millisecond
	maxReconnectInterval = 10 * time.Second
	pingInterval         = 90 * time.Second
)

// Notifier sends changes with pg_notify.
type Notifier struct {
	db      *gorm.DB
	channel string
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db, channel: pubsub.Channel}
}

func (n *Notifier) Notify(ctx context.Context, change ports.OrderChange) error {
	payload, err := pubsub.Encode(change)
	if err != nil {
		return err
	}
	if err = n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.channel, payload).Error; err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

// Feed receives changes through a dedicated lib/pq listener connection.
type Feed struct {
	dsn     string
	channel string
	logger  *slog.Logger
}

// NewFeed creates a feed over dsn; the connection is opened by Listen.
func NewFeed(dsn string, logger *slog.Logger) *Feed {
	return &Feed{
		dsn:     dsn,
		channel: pubsub.Channel,
		logger:  logger.With("component", "pg_change_feed"),
	}
}

// Listen blocks until ctx is done. The listener reconnects on its own; after a
// reconnect a nil notification is delivered, which is ignored here since the
// periodic refresh covers anything missed in between.
func (f *Feed) Listen(ctx context.Context, handle func(ports.OrderChange)) error {
	listener := pq.NewListener(f.dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				f.logger.Warn("listener event", "event", event, "error", err)
			}
		})
	defer func() { _ = listener.Close() }()

	if err := listener.Listen(f.channel); err != nil {
		return fmt.Errorf("listen %s: %w", f.channel, err)
	}
	f.logger.Info("listening for order changes", "channel", f.channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			if n == nil {
				continue
			}
			change, err := pubsub.Decode(n.Extra)
			if err != nil {
				f.logger.Warn("ignoring malformed notification", "error", err)
				continue
			}
			handle(change)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				f.logger.Warn("listener ping failed", "error", err)
			}
		}
	}
}
