package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// AssemblyLine is one resolved product line of a new order.
type AssemblyLine struct {
	Product catalog.Product
	ShopID  kernel.UUID
	Price   kernel.Money
}

// Assembly holds everything needed to build an order, already resolved from the catalog.
// Shops may contain duplicates; they collapse into one bucket.
type Assembly struct {
	Number    order.Number
	BuyerID   kernel.UUID
	Currency  kernel.Currency
	Shops     []catalog.Shop
	Lines     []AssemblyLine
	Addresses []catalog.Address
	Now       time.Time
}

// OrderAssembler builds a multi-vendor Order from resolved catalog records.
//
// Business rules:
//   - one ShopOrder per distinct shop, in the order the shops were first listed
//   - every line lands in the bucket of the shop it declares
//   - a line declaring a shop that is not listed aborts the whole order
//     with order.ErrProductShopNotInOrder
//   - the total is the sum of the submitted line prices
//
// Example usage:
//
//	o, err := services.NewOrderAssembler().Assemble(services.Assembly{...})
//	if errors.Is(err, order.ErrProductShopNotInOrder) {
//	    // client sent an inconsistent cart
//	}
type OrderAssembler struct{}

func NewOrderAssembler() OrderAssembler {
	return OrderAssembler{}
}

func (a OrderAssembler) Assemble(in Assembly) (*order.Order, error) {
	buckets := make(map[kernel.UUID]*order.ShopOrder, len(in.Shops))
	shopOrders := make([]*order.ShopOrder, 0, len(in.Shops))
	for _, shop := range in.Shops {
		if _, ok := buckets[shop.ID]; ok {
			continue
		}
		so, err := SnapshotShop(shop)
		if err != nil {
			return nil, err
		}
		buckets[shop.ID] = so
		shopOrders = append(shopOrders, so)
	}

	for _, line := range in.Lines {
		bucket, ok := buckets[line.ShopID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s declares shop %s",
				order.ErrProductShopNotInOrder, line.Product.ID, line.ShopID)
		}
		snapshot, err := SnapshotProduct(line.Product, line.Price, in.Currency)
		if err != nil {
			return nil, err
		}
		if err = bucket.AddProduct(snapshot); err != nil {
			return nil, err
		}
	}

	locations := make([]order.LocationOrder, 0, len(in.Addresses))
	for _, address := range in.Addresses {
		location, err := SnapshotAddress(address)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	return order.NewOrder(in.Number, in.BuyerID, in.Currency, shopOrders, locations, in.Now)
}
