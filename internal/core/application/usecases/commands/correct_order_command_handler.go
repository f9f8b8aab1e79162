package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// CorrectOrderCommandHandler replaces currency, shop slices or locations of an
// order in one transaction.
type CorrectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCorrectOrderCommandHandler(uowFactory OrderUoWFactory) CorrectOrderCommandHandler {
	return CorrectOrderCommandHandler{uowFactory: uowFactory}
}

func (h *CorrectOrderCommandHandler) Handle(ctx context.Context, cmd CorrectOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.Number())
	if err != nil {
		return nil, err
	}

	currency := aggregate.Currency()
	if cmd.Currency() != nil {
		currency = *cmd.Currency()
	}

	correction := order.Correction{Currency: cmd.Currency()}
	if cmd.Shops() != nil {
		if correction.ShopOrders, err = buildShopOrders(cmd.Shops(), currency); err != nil {
			return nil, err
		}
	}
	if cmd.Locations() != nil {
		if correction.Locations, err = buildLocations(cmd.Locations()); err != nil {
			return nil, err
		}
	}

	if err = aggregate.Correct(correction, time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Replace(ctx, aggregate, correction); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func buildShopOrders(shops []CorrectedShop, currency kernel.Currency) ([]*order.ShopOrder, error) {
	var errList []error
	out := make([]*order.ShopOrder, 0, len(shops))
	for i, s := range shops {
		so, err := buildShopOrder(s, currency)
		if err != nil {
			errList = append(errList, fmt.Errorf("shops[%d]: %w", i, err))
			continue
		}
		out = append(out, so)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return out, nil
}

func buildShopOrder(s CorrectedShop, currency kernel.Currency) (*order.ShopOrder, error) {
	shopID, err := parseID("shopId", s.ShopID)
	if err != nil {
		return nil, err
	}
	status := order.Waiting
	if s.Status != "" {
		if status, err = order.ParseFulfillmentStatus(s.Status); err != nil {
			return nil, err
		}
	}

	products := make([]order.ProductOrder, 0, len(s.Products))
	for i, p := range s.Products {
		product, productErr := buildProduct(p, currency)
		if productErr != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, productErr)
		}
		products = append(products, product)
	}

	return order.RestoreShopOrder(shopID, s.Slug, s.Name, s.Logo, catalog.ShopType(s.Type),
		status, s.PickupTime, products)
}

func buildProduct(p CorrectedProduct, currency kernel.Currency) (order.ProductOrder, error) {
	productID, idErr := parseID("productId", p.ProductID)
	price, priceErr := kernel.MoneyFromString(p.Price)
	if err := errors.Join(idErr, priceErr); err != nil {
		return order.ProductOrder{}, err
	}

	return order.NewProductOrder(order.ProductOrderParams{
		ProductID:    productID,
		Slug:         p.Slug,
		Name:         p.Name,
		SerialNumber: p.SerialNumber,
		Manufacturer: p.Manufacturer,
		Price:        price,
		Currency:     currency,
		Dimensions: order.Dimensions{
			Width:  p.Width,
			Height: p.Height,
			Depth:  p.Depth,
			Weight: p.Weight,
		},
		Image:   p.Image,
		Barcode: p.Barcode,
	})
}

func buildLocations(locations []CorrectedLocation) ([]order.LocationOrder, error) {
	var errList []error
	out := make([]order.LocationOrder, 0, len(locations))
	for i, l := range locations {
		addressID, idErr := parseID("addressId", l.AddressID)
		coords, coordsErr := kernel.NewCoordinates(l.Latitude, l.Longitude)
		if err := errors.Join(idErr, coordsErr); err != nil {
			errList = append(errList, fmt.Errorf("locations[%d]: %w", i, err))
			continue
		}
		location, err := order.NewLocationOrder(addressID, l.Street, l.Postal, l.City, l.Country, coords)
		if err != nil {
			errList = append(errList, fmt.Errorf("locations[%d]: %w", i, err))
			continue
		}
		out = append(out, location)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return out, nil
}
