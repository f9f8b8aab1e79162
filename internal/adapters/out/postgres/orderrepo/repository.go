package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolation = "23505"
	ordersTable     = "orders"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker collects the changes to announce once the transaction commits.
type changeTracker interface {
	TrackChange(change ports.OrderChange)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and all of its children.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.TableName == ordersTable {
			return ports.ErrOrderNumberTaken
		}
		return err
	}

	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.ChangeCreated,
		Number:  dto.Number,
		ShopIDs: shopIDsOf(dto.ShopOrders),
	})
	return nil
}

// Get retrieves an order by number with every child in request order.
func (r *GormOrderRepository) Get(ctx context.Context, number order.Number) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("ShopOrders", byPosition).
		Preload("ShopOrders.Products", byPosition).
		Preload("Locations", byPosition).
		First(&dto, "number = ?", number.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the shop_orders rows of the order, then its orders row, and
// loads the aggregate. Shop status updates take the same rows in the same order.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, number order.Number) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var locked []uuid.UUID
	if err := db.Model(&ShopOrderDTO{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_number = ?", number.String()).
		Scopes(byPosition).
		Pluck("shop_id", &locked).Error; err != nil {
		return nil, err
	}

	var head OrderDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("number").
		First(&head, "number = ?", number.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number.String())
		}
		return nil, err
	}

	return r.Get(ctx, number)
}

// GetShopOrderForUpdate locks the shop_orders row of one shop. Rows of the
// other shops and the orders row stay unlocked.
func (r *GormOrderRepository) GetShopOrderForUpdate(
	ctx context.Context,
	number order.Number,
	shopID kernel.UUID,
) (*order.ShopOrder, error) {
	if err := errors.Join(number.Validate(), shopID.Validate()); err != nil {
		return nil, err
	}

	var dto ShopOrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Products", byPosition).
		First(&dto, "order_number = ? AND shop_id = ?", number.String(), shopID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.missingShopOrder(ctx, number, shopID)
		}
		return nil, err
	}

	return shopOrderToDomain(dto)
}

// UpdateShopOrder writes status and pickup time of one shop slice.
func (r *GormOrderRepository) UpdateShopOrder(
	ctx context.Context,
	number order.Number,
	shopOrder *order.ShopOrder,
) error {
	if err := errors.Join(number.Validate(), shopOrder.Validate()); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&ShopOrderDTO{}).
		Where("order_number = ? AND shop_id = ?", number.String(), shopOrder.ShopID().Bytes()).
		Updates(map[string]any{
			"status":      shopOrder.Status().String(),
			"pickup_time": pickupTimeColumn(shopOrder.PickupTime()),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingShopOrder(ctx, number, shopOrder.ShopID())
	}

	if err := db.Model(&OrderDTO{}).
		Where("number = ?", number.String()).
		Update("updated_at", time.Now().UTC()).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.ChangeUpdated,
		Number:  number.String(),
		ShopIDs: []string{shopOrder.ShopID().String()},
	})
	return nil
}

// UpdateDeliverer writes the deliverer column only.
func (r *GormOrderRepository) UpdateDeliverer(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ?", dto.Number).
		Updates(map[string]any{
			"deliverer_id": dto.DelivererID,
			"updated_at":   dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderNumber", dto.Number)
	}

	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.ChangeUpdated,
		Number:  dto.Number,
		ShopIDs: shopIDsOf(dto.ShopOrders),
	})
	return nil
}

// Replace rewrites the order columns and the child collections the correction
// carries. Shops dropped by the correction are announced as well so their views
// lose the order.
func (r *GormOrderRepository) Replace(
	ctx context.Context,
	aggregate *order.Order,
	correction order.Correction,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	var previous []uuid.UUID
	if err := db.Model(&ShopOrderDTO{}).
		Where("order_number = ?", dto.Number).
		Pluck("shop_id", &previous).Error; err != nil {
		return err
	}

	result := db.Model(&OrderDTO{}).
		Where("number = ?", dto.Number).
		Updates(map[string]any{
			"currency":     dto.Currency,
			"deliverer_id": dto.DelivererID,
			"updated_at":   dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderNumber", dto.Number)
	}

	if correction.ShopOrders != nil {
		if err := db.Where("order_number = ?", dto.Number).Delete(&ShopOrderDTO{}).Error; err != nil {
			return err
		}
		if err := db.Create(&dto.ShopOrders).Error; err != nil {
			return err
		}
	}
	if correction.Locations != nil {
		if err := db.Where("order_number = ?", dto.Number).Delete(&LocationOrderDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Locations) > 0 {
			if err := db.Create(&dto.Locations).Error; err != nil {
				return err
			}
		}
	}

	shopIDs := shopIDsOf(dto.ShopOrders)
	for _, id := range previous {
		shopIDs = appendUnique(shopIDs, id.String())
	}
	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.ChangeUpdated,
		Number:  dto.Number,
		ShopIDs: shopIDs,
	})
	return nil
}

// Delete removes the order; children go with it through ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(ctx context.Context, number order.Number) error {
	if err := number.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	var shopIDs []uuid.UUID
	if err := db.Model(&ShopOrderDTO{}).
		Where("order_number = ?", number.String()).
		Pluck("shop_id", &shopIDs).Error; err != nil {
		return err
	}

	result := db.Where("number = ?", number.String()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderNumber", number.String())
	}

	ids := make([]string, 0, len(shopIDs))
	for _, id := range shopIDs {
		ids = append(ids, id.String())
	}
	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.ChangeDeleted,
		Number:  number.String(),
		ShopIDs: ids,
	})
	return nil
}

// missingShopOrder tells an unknown order apart from a shop that is not part of it.
func (r *GormOrderRepository) missingShopOrder(ctx context.Context, number order.Number, shopID kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ?", number.String()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderNumber", number.String())
	}
	return errs.NewObjectNotFoundError("shopId", shopID.String())
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func shopIDsOf(shopOrders []ShopOrderDTO) []string {
	ids := make([]string, 0, len(shopOrders))
	for _, so := range shopOrders {
		ids = appendUnique(ids, so.ShopID.String())
	}
	return ids
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
