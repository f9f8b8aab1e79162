package eventbus

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
)

// LogPublisher stands in for Kafka when no brokers are configured: events are
// logged at debug level and dropped.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	for _, e := range events {
		p.logger.DebugContext(ctx, "domain event", "event", e.EventName(), "number", e.OrderNumber())
	}
	return nil
}
