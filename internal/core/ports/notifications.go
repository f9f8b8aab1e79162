package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// ChangeKind tells subscribers what happened to an order.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// OrderChange is the lightweight notice sent after a committed write. It names the
// order and the shops whose views may differ now; consumers re-read what they need.
type OrderChange struct {
	Kind    ChangeKind `json:"kind"`
	Number  string     `json:"number"`
	ShopIDs []string   `json:"shopIds,omitempty"`
}

// ChangeNotifier announces committed order changes.
type ChangeNotifier interface {
	Notify(ctx context.Context, change OrderChange) error
}

// ChangeFeed delivers announced changes, possibly from other instances. Listen
// blocks until ctx is done or the feed fails.
type ChangeFeed interface {
	Listen(ctx context.Context, handle func(OrderChange)) error
}

// EventPublisher ships domain events to downstream consumers such as notification
// and search indexing.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}
