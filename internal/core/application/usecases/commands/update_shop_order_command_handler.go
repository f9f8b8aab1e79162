package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// UpdateShopOrderCommandHandler applies a status change and a pickup time to a
// single shop_orders row within one transaction. The row is locked for the
// duration, so two shops of the same order can progress concurrently without
// overwriting each other. A failing step leaves the row as it was.
type UpdateShopOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewUpdateShopOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateShopOrderCommandHandler {
	return UpdateShopOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_shop_order_handler"),
	}
}

// Handle returns a confirmation message such as
// "<shopId> status set to accepted for 7KQ2M9XA1B". The status is applied before
// the pickup time, so accepting and setting a pickup time works in one call.
// Repeating the current values succeeds without writing.
func (h *UpdateShopOrderCommandHandler) Handle(ctx context.Context, cmd UpdateShopOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	shopOrder, err := repo.GetShopOrderForUpdate(ctx, cmd.Number(), cmd.ShopID())
	if err != nil {
		return "", err
	}

	previous := shopOrder.Status()
	statusChanged := false
	if status, ok := cmd.Status(); ok {
		if statusChanged, err = shopOrder.ChangeStatus(status); err != nil {
			return "", err
		}
	}

	pickupChanged := false
	if pickupTime, ok := cmd.PickupTime(); ok {
		pickupChanged = shopOrder.PickupTime() != pickupTime
		if err = shopOrder.SetPickupTime(pickupTime); err != nil {
			return "", err
		}
	}

	if statusChanged || pickupChanged {
		if err = repo.UpdateShopOrder(ctx, cmd.Number(), shopOrder); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if statusChanged {
		event := order.ShopStatusChanged{
			Number:     cmd.Number().String(),
			ShopID:     cmd.ShopID().String(),
			From:       previous.String(),
			To:         shopOrder.Status().String(),
			OccurredAt: time.Now().UTC(),
		}
		if err = h.publisher.Publish(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish shop status event",
				"order", cmd.Number().String(), "shop", cmd.ShopID().String(), "error", err)
		}
	}

	if _, ok := cmd.Status(); ok {
		return fmt.Sprintf("%s status set to %s for %s", cmd.ShopID(), shopOrder.Status(), cmd.Number()), nil
	}
	return fmt.Sprintf("%s pickup time set to %s for %s", cmd.ShopID(), shopOrder.PickupTime(), cmd.Number()), nil
}
