// Package catalog holds the live catalog records the order service reads when an
// order is placed. They belong to the catalog collaborator and keep changing after
// an order exists; orders only ever keep snapshots of them (see package order).
package catalog

import (
	"marketplace/internal/core/domain/model/kernel"
)

// ShopType distinguishes retail shops from restaurants.
type ShopType string

const (
	ShopTypeStore      ShopType = "store"
	ShopTypeRestaurant ShopType = "restaurant"
)

// IsValid reports whether t is one of the known shop types.
func (t ShopType) IsValid() bool {
	return t == ShopTypeStore || t == ShopTypeRestaurant
}

// Product is a live catalog product. Prices live on the shop/product pair and are
// deliberately absent: the order takes the price from the buyer's request.
type Product struct {
	ID           kernel.UUID
	Slug         string
	Name         string
	SerialNumber string
	Manufacturer string
	Width        float64
	Height       float64
	Depth        float64
	Weight       float64
	Images       []string
	Barcode      string
}

// Shop is a live catalog shop.
type Shop struct {
	ID   kernel.UUID
	Slug string
	Name string
	Logo string
	Type ShopType
}

// Address is a geocoded catalog address.
type Address struct {
	ID          kernel.UUID
	Name        string
	Street      string
	Postal      string
	City        string
	Country     string
	Coordinates kernel.Coordinates
}
