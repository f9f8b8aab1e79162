// Package ports defines the contracts between the order core and its infrastructure:
// persistence, catalog and identity lookups, event publishing and change notification.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Writes after creation are targeted: a status change rewrites one shop_orders row,
// a deliverer assignment one orders column. Only administrative correction replaces
// child rows wholesale.
type OrderRepository interface {
	// Add persists a new order with all its shop slices, product lines and locations.
	// Returns ErrOrderNumberTaken when the number already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with every child loaded.
	Get(ctx context.Context, number order.Number) (*order.Order, error)

	// GetForUpdate retrieves an order with every child and locks its orders and
	// shop_orders rows until the transaction ends.
	GetForUpdate(ctx context.Context, number order.Number) (*order.Order, error)

	// GetShopOrderForUpdate loads one shop slice and locks its row until the
	// transaction ends. Concurrent updates to other shops of the same order proceed.
	GetShopOrderForUpdate(ctx context.Context, number order.Number, shopID kernel.UUID) (*order.ShopOrder, error)

	// UpdateShopOrder writes the status and pickup time of one shop slice and bumps
	// the order's updated_at.
	UpdateShopOrder(ctx context.Context, number order.Number, shopOrder *order.ShopOrder) error

	// UpdateDeliverer writes only the deliverer and updated_at of the order.
	UpdateDeliverer(ctx context.Context, aggregate *order.Order) error

	// Replace rewrites the order columns of an existing order. Shop slices and
	// locations are rewritten only when the correction carries them.
	Replace(ctx context.Context, aggregate *order.Order, correction order.Correction) error

	// Delete removes the order and, through cascades, all of its children.
	Delete(ctx context.Context, number order.Number) error
}

// ErrOrderNumberTaken signals an order number collision on insert.
var ErrOrderNumberTaken = errs.NewConflictError("order number already taken")
