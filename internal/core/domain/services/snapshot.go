package services

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// SnapshotProduct freezes a catalog product with the price the buyer submitted.
// Only the first catalog image is kept.
func SnapshotProduct(p catalog.Product, price kernel.Money, currency kernel.Currency) (order.ProductOrder, error) {
	var image string
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	return order.NewProductOrder(order.ProductOrderParams{
		ProductID:    p.ID,
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
		Image:   image,
		Barcode: p.Barcode,
	})
}

// SnapshotShop freezes a catalog shop into an empty, waiting ShopOrder.
func SnapshotShop(s catalog.Shop) (*order.ShopOrder, error) {
	return order.NewShopOrder(s.ID, s.Slug, s.Name, s.Logo, s.Type)
}

// SnapshotAddress freezes a catalog address. The address name is not kept.
func SnapshotAddress(a catalog.Address) (order.LocationOrder, error) {
	return order.NewLocationOrder(a.ID, a.Street, a.Postal, a.City, a.Country, a.Coordinates)
}
