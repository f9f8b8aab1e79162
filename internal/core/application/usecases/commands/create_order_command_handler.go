package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// maxNumberAttempts bounds retries on order number collisions.
const maxNumberAttempts = 3

// CreateOrderCommandHandler resolves the cart against the catalog, assembles the
// multi-vendor order and persists it in a single transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, users, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrProductShopNotInOrder) {
//	    // nothing was persisted
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogProvider
	users      ports.UserDirectory
	publisher  ports.EventPublisher
	assembler  services.OrderAssembler
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogProvider,
	users ports.UserDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		users:      users,
		publisher:  publisher,
		assembler:  services.NewOrderAssembler(),
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle creates the order. Nothing is persisted unless every line, shop and address
// resolves and every line belongs to a listed shop.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.users.GetUser(ctx, cmd.BuyerID()); err != nil {
		return nil, err
	}

	assembly, err := h.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	for attempt := 1; ; attempt++ {
		created, err = h.persist(ctx, assembly)
		if err == nil {
			break
		}
		if !errors.Is(err, ports.ErrOrderNumberTaken) || attempt == maxNumberAttempts {
			return nil, err
		}
		h.logger.WarnContext(ctx, "Order number collision, retrying", "attempt", attempt)
	}

	event := order.NewOrderCreated(created, time.Now())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order created event",
			"order", created.Number().String(), "error", err)
	}

	return created, nil
}

func (h *CreateOrderCommandHandler) resolve(ctx context.Context, cmd CreateOrderCommand) (services.Assembly, error) {
	lines := cmd.Lines()

	productIDs := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}

	shops, err := h.catalog.FindShops(ctx, cmd.ShopIDs())
	if err != nil {
		return services.Assembly{}, err
	}
	products, err := h.catalog.FindProducts(ctx, productIDs)
	if err != nil {
		return services.Assembly{}, err
	}
	addresses, err := h.catalog.FindAddresses(ctx, cmd.AddressIDs())
	if err != nil {
		return services.Assembly{}, err
	}

	assembly := services.Assembly{
		BuyerID:  cmd.BuyerID(),
		Currency: cmd.Currency(),
	}
	if assembly.Shops, err = pick("shopId", cmd.ShopIDs(), shops); err != nil {
		return services.Assembly{}, err
	}
	if assembly.Addresses, err = pick("addressId", cmd.AddressIDs(), addresses); err != nil {
		return services.Assembly{}, err
	}
	found, err := pick("productId", productIDs, products)
	if err != nil {
		return services.Assembly{}, err
	}
	assembly.Lines = make([]services.AssemblyLine, 0, len(lines))
	for i, line := range lines {
		assembly.Lines = append(assembly.Lines, services.AssemblyLine{
			Product: found[i],
			ShopID:  line.ShopID,
			Price:   line.Price,
		})
	}

	return assembly, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, assembly services.Assembly) (*order.Order, error) {
	number, err := order.NewNumber()
	if err != nil {
		return nil, err
	}
	assembly.Number = number
	assembly.Now = time.Now()

	created, err := h.assembler.Assemble(assembly)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// pick returns the records for ids in order, failing on the first id with no record.
func pick[T catalog.Product | catalog.Shop | catalog.Address](
	param string,
	ids []kernel.UUID,
	records map[kernel.UUID]T,
) ([]T, error) {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		record, ok := records[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		out = append(out, record)
	}
	return out, nil
}
