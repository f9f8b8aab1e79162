package queries

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewListOrders*Query constructors",
)

// ListOrdersQuery lists orders, optionally restricted to those that involve a shop,
// those where any shop slice has a status, or both at once on the same slice.
//
// Example:
//
//	query, err := NewListOrdersByStatusQuery("waiting")
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	shopID *kernel.UUID
	status *order.FulfillmentStatus

	guard guard.ConstructorGuard
}

// NewListOrdersQuery lists every order.
func NewListOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

func NewListOrdersByShopQuery(shopID string) (ListOrdersQuery, error) {
	id, err := parseShopID(shopID)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{shopID: &id, guard: guard.NewConstructorGuard()}, nil
}

func NewListOrdersByStatusQuery(status string) (ListOrdersQuery, error) {
	parsed, err := order.ParseFulfillmentStatus(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{status: &parsed, guard: guard.NewConstructorGuard()}, nil
}

// NewListOrdersByShopAndStatusQuery matches orders where the given shop's own slice
// has the status.
func NewListOrdersByShopAndStatusQuery(shopID, status string) (ListOrdersQuery, error) {
	id, idErr := parseShopID(shopID)
	parsed, statusErr := order.ParseFulfillmentStatus(status)
	if err := errors.Join(idErr, statusErr); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{shopID: &id, status: &parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle uses EXISTS on shop_orders so orders are never duplicated when several of
// their slices match. Results are sorted by creation time, then number.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.shopID == nil && query.status == nil {
		return loadOrders(ctx, h.db, "")
	}

	var (
		conditions []string
		args       []any
	)
	if query.shopID != nil {
		conditions = append(conditions, "so.shop_id = ?")
		args = append(args, query.shopID.String())
	}
	if query.status != nil {
		conditions = append(conditions, "so.status = ?")
		args = append(args, query.status.String())
	}

	filter := `WHERE EXISTS (
		SELECT 1 FROM shop_orders so
		WHERE so.order_number = o.number AND ` + strings.Join(conditions, " AND ") + `
	)`
	return loadOrders(ctx, h.db, filter, args...)
}
