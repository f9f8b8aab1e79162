// Package queries contains read operations over the order store.
// Handlers run raw SQL against the normalized order tables and return flat
// response structs that the HTTP and realtime layers encode as JSON directly.
package queries

import (
	"time"

	"marketplace/internal/core/domain/model/order"
)

// OrderResponse is the full read model of an order.
type OrderResponse struct {
	Number      string              `json:"number"`
	Total       string              `json:"total"`
	Currency    string              `json:"currency"`
	BuyerID     string              `json:"buyerId"`
	DelivererID *string             `json:"delivererId"`
	Shops       []ShopOrderResponse `json:"shops"`
	Locations   []LocationResponse  `json:"locations"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ShopOrderResponse is one shop's slice of an order.
type ShopOrderResponse struct {
	ShopID     string            `json:"shopId"`
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	Logo       string            `json:"logo"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	PickupTime string            `json:"pickupTime"`
	Products   []ProductResponse `json:"products"`
}

type ProductResponse struct {
	ProductID    string  `json:"productId"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serialNumber"`
	Manufacturer string  `json:"manufacturer"`
	Price        string  `json:"price"`
	Currency     string  `json:"currency"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Depth        float64 `json:"depth"`
	Weight       float64 `json:"weight"`
	Image        string  `json:"image"`
	Barcode      string  `json:"barcode"`
}

type LocationResponse struct {
	AddressID string  `json:"addressId"`
	Street    string  `json:"street"`
	Postal    string  `json:"postal"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NoDeliverer fills the deliverer fields of a shop view while none is assigned.
const NoDeliverer = "none"

// ShopOrderViewResponse is the compact per-shop projection of an order shown on shop
// dashboards. It never carries data of the other shops in the order.
type ShopOrderViewResponse struct {
	Number         string    `json:"number"`
	BuyerName      string    `json:"buyerName"`
	BuyerEmail     string    `json:"buyerEmail"`
	Status         string    `json:"status"`
	DelivererName  string    `json:"delivererName"`
	DelivererEmail string    `json:"delivererEmail"`
	PickupTime     string    `json:"pickupTime"`
	Currency       string    `json:"currency"`
	ProductCount   int       `json:"productCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewOrderResponse renders an aggregate the way the order queries return it, for
// writes that answer with the stored order.
func NewOrderResponse(o *order.Order) OrderResponse {
	var delivererID *string
	if id := o.DelivererID(); id != nil {
		raw := id.String()
		delivererID = &raw
	}

	shops := make([]ShopOrderResponse, 0, len(o.ShopOrders()))
	for _, so := range o.ShopOrders() {
		products := make([]ProductResponse, 0, len(so.Products()))
		for _, p := range so.Products() {
			dim := p.Dimensions()
			products = append(products, ProductResponse{
				ProductID:    p.ProductID().String(),
				Slug:         p.Slug(),
				Name:         p.Name(),
				SerialNumber: p.SerialNumber(),
				Manufacturer: p.Manufacturer(),
				Price:        p.Price().String(),
				Currency:     p.Currency().String(),
				Width:        dim.Width,
				Height:       dim.Height,
				Depth:        dim.Depth,
				Weight:       dim.Weight,
				Image:        p.Image(),
				Barcode:      p.Barcode(),
			})
		}
		shops = append(shops, ShopOrderResponse{
			ShopID:     so.ShopID().String(),
			Slug:       so.Slug(),
			Name:       so.Name(),
			Logo:       so.Logo(),
			Type:       string(so.Type()),
			Status:     so.Status().String(),
			PickupTime: so.PickupTime(),
			Products:   products,
		})
	}

	locations := make([]LocationResponse, 0, len(o.Locations()))
	for _, l := range o.Locations() {
		locations = append(locations, LocationResponse{
			AddressID: l.AddressID().String(),
			Street:    l.Street(),
			Postal:    l.Postal(),
			City:      l.City(),
			Country:   l.Country(),
			Latitude:  l.Coordinates().Latitude(),
			Longitude: l.Coordinates().Longitude(),
		})
	}

	return OrderResponse{
		Number:      o.Number().String(),
		Total:       o.Total().String(),
		Currency:    o.Currency().String(),
		BuyerID:     o.BuyerID().String(),
		DelivererID: delivererID,
		Shops:       shops,
		Locations:   locations,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}
