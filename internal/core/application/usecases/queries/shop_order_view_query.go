package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetShopOrderViewQueryIsNotConstructed = errors.New(
		"GetShopOrderViewQuery must be created via NewGetShopOrderViewQuery constructor",
	)
	ErrListShopOrderViewsQueryIsNotConstructed = errors.New(
		"ListShopOrderViewsQuery must be created via NewListShopOrderViewsQuery constructor",
	)
)

// GetShopOrderViewQuery fetches the shop dashboard projection of one order.
type GetShopOrderViewQuery struct {
	shopID kernel.UUID
	number order.Number

	guard guard.ConstructorGuard
}

func NewGetShopOrderViewQuery(shopID, number string) (GetShopOrderViewQuery, error) {
	id, idErr := parseShopID(shopID)
	parsed, numberErr := order.NumberFromString(number)
	if err := errors.Join(idErr, numberErr); err != nil {
		return GetShopOrderViewQuery{}, err
	}
	return GetShopOrderViewQuery{shopID: id, number: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShopOrderViewQuery) Validate() error {
	return q.guard.Validate(ErrGetShopOrderViewQueryIsNotConstructed)
}

// ListShopOrderViewsQuery lists the dashboard projection of every order of a shop.
type ListShopOrderViewsQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListShopOrderViewsQuery(shopID string) (ListShopOrderViewsQuery, error) {
	id, err := parseShopID(shopID)
	if err != nil {
		return ListShopOrderViewsQuery{}, err
	}
	return ListShopOrderViewsQuery{shopID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShopOrderViewsQuery) Validate() error {
	return q.guard.Validate(ErrListShopOrderViewsQueryIsNotConstructed)
}

// ShopOrderViewQueryHandler answers both shop view queries. Only the requested shop's
// slice is joined, so other shops' statuses and products never leak into the view.
type ShopOrderViewQueryHandler struct {
	db *gorm.DB
}

func NewShopOrderViewQueryHandler(db *gorm.DB) ShopOrderViewQueryHandler {
	return ShopOrderViewQueryHandler{db: db}
}

func (h ShopOrderViewQueryHandler) Get(ctx context.Context, query GetShopOrderViewQuery) (ShopOrderViewResponse, error) {
	if err := query.Validate(); err != nil {
		return ShopOrderViewResponse{}, err
	}

	views, err := h.load(ctx, query.shopID, &query.number)
	if err != nil {
		return ShopOrderViewResponse{}, err
	}
	if len(views) == 0 {
		return ShopOrderViewResponse{}, errs.NewObjectNotFoundError("orderNumber", query.number.String())
	}
	return views[0], nil
}

func (h ShopOrderViewQueryHandler) List(ctx context.Context, query ListShopOrderViewsQuery) ([]ShopOrderViewResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.load(ctx, query.shopID, nil)
}

func (h ShopOrderViewQueryHandler) load(
	ctx context.Context,
	shopID kernel.UUID,
	number *order.Number,
) ([]ShopOrderViewResponse, error) {
	sqlQuery := `
		SELECT
			o.number,
			o.currency,
			o.created_at,
			o.deliverer_id,
			so.status,
			so.pickup_time,
			COALESCE(b.first_name, ''),
			COALESCE(b.last_name, ''),
			COALESCE(b.email, ''),
			COALESCE(d.first_name, ''),
			COALESCE(d.last_name, ''),
			COALESCE(d.email, ''),
			(SELECT COUNT(*) FROM product_orders po WHERE po.shop_order_id = so.id)
		FROM shop_orders so
		JOIN orders o ON o.number = so.order_number
		LEFT JOIN users b ON b.id = o.buyer_id
		LEFT JOIN users d ON d.id = o.deliverer_id
		WHERE so.shop_id = ?`
	args := []any{shopID.String()}
	if number != nil {
		sqlQuery += ` AND o.number = ?`
		args = append(args, number.String())
	}
	sqlQuery += ` ORDER BY o.created_at ASC, o.number ASC`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ShopOrderViewResponse, 0)
	for rows.Next() {
		var (
			view        ShopOrderViewResponse
			createdAt   time.Time
			delivererID uuid.NullUUID
			pickupTime  sql.NullString
			buyer       identity.User
			deliverer   identity.User
		)

		if err = rows.Scan(
			&view.Number,
			&view.Currency,
			&createdAt,
			&delivererID,
			&view.Status,
			&pickupTime,
			&buyer.FirstName,
			&buyer.LastName,
			&buyer.Email,
			&deliverer.FirstName,
			&deliverer.LastName,
			&deliverer.Email,
			&view.ProductCount,
		); err != nil {
			return nil, err
		}

		view.CreatedAt = createdAt
		view.PickupTime = pickupTime.String
		view.BuyerName = buyer.DisplayName()
		view.BuyerEmail = buyer.Email
		view.DelivererName, view.DelivererEmail = NoDeliverer, NoDeliverer
		if delivererID.Valid {
			view.DelivererName = deliverer.DisplayName()
			view.DelivererEmail = deliverer.Email
			if view.DelivererName == "" {
				view.DelivererName = delivererID.UUID.String()
			}
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func parseShopID(raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("shopId")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shopId", err)
	}
	return id, nil
}
