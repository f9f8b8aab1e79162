package http

import (
	"marketplace/internal/core/application/usecases/commands"
)

// CreateOrderRequest is the checkout body. Prices are decimal strings.
type CreateOrderRequest struct {
	Currency  string             `json:"currency"`
	Products  []OrderLineRequest `json:"products"`
	Shops     []string           `json:"shops"`
	Addresses []string           `json:"addresses"`
}

type OrderLineRequest struct {
	ProductID string `json:"id"`
	ShopID    string `json:"shopId"`
	Price     string `json:"price"`
}

func (r CreateOrderRequest) lines() []commands.OrderLine {
	lines := make([]commands.OrderLine, 0, len(r.Products))
	for _, p := range r.Products {
		lines = append(lines, commands.OrderLine{ProductID: p.ProductID, ShopID: p.ShopID, Price: p.Price})
	}
	return lines
}

// ShopOrderUpdateRequest changes one shop's slice. At least one field is set.
type ShopOrderUpdateRequest struct {
	Status     *string `json:"status"`
	PickupTime *string `json:"pickupTime"`
}

type AssignDelivererRequest struct {
	DelivererID string `json:"delivererId"`
}

// CorrectOrderRequest is the administrative patch; absent fields are kept.
type CorrectOrderRequest struct {
	Currency  *string                    `json:"currency"`
	Shops     []CorrectedShopRequest     `json:"shops"`
	Locations []CorrectedLocationRequest `json:"locations"`
}

type CorrectedShopRequest struct {
	ShopID     string                    `json:"shopId"`
	Slug       string                    `json:"slug"`
	Name       string                    `json:"name"`
	Logo       string                    `json:"logo"`
	Type       string                    `json:"type"`
	Status     string                    `json:"status"`
	PickupTime string                    `json:"pickupTime"`
	Products   []CorrectedProductRequest `json:"products"`
}

type CorrectedProductRequest struct {
	ProductID    string  `json:"productId"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serialNumber"`
	Manufacturer string  `json:"manufacturer"`
	Price        string  `json:"price"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Depth        float64 `json:"depth"`
	Weight       float64 `json:"weight"`
	Image        string  `json:"image"`
	Barcode      string  `json:"barcode"`
}

type CorrectedLocationRequest struct {
	AddressID string  `json:"addressId"`
	Street    string  `json:"street"`
	Postal    string  `json:"postal"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// shops returns nil when the request leaves shops untouched.
func (r CorrectOrderRequest) shops() []commands.CorrectedShop {
	if r.Shops == nil {
		return nil
	}
	out := make([]commands.CorrectedShop, 0, len(r.Shops))
	for _, s := range r.Shops {
		products := make([]commands.CorrectedProduct, 0, len(s.Products))
		for _, p := range s.Products {
			products = append(products, commands.CorrectedProduct(p))
		}
		out = append(out, commands.CorrectedShop{
			ShopID:     s.ShopID,
			Slug:       s.Slug,
			Name:       s.Name,
			Logo:       s.Logo,
			Type:       s.Type,
			Status:     s.Status,
			PickupTime: s.PickupTime,
			Products:   products,
		})
	}
	return out
}

func (r CorrectOrderRequest) locations() []commands.CorrectedLocation {
	if r.Locations == nil {
		return nil
	}
	out := make([]commands.CorrectedLocation, 0, len(r.Locations))
	for _, l := range r.Locations {
		out = append(out, commands.CorrectedLocation(l))
	}
	return out
}

// MessageResponse confirms a write that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}
