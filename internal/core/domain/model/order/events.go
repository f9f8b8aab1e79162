package order

import (
	"time"
)

// DomainEvent is a fact about an order that downstream consumers care about.
type DomainEvent interface {
	// EventName is the stable name consumers route on.
	EventName() string
	// OrderNumber keys the event so that all events of one order stay ordered.
	OrderNumber() string
}

// OrderCreated is raised once an order has been committed.
type OrderCreated struct {
	Number     string    `json:"number"`
	BuyerID    string    `json:"buyerId"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	ShopIDs    []string  `json:"shopIds"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e OrderCreated) EventName() string   { return "order.created" }
func (e OrderCreated) OrderNumber() string { return e.Number }

// NewOrderCreated describes o for downstream consumers.
func NewOrderCreated(o *Order, at time.Time) OrderCreated {
	shopIDs := make([]string, 0, len(o.shopOrders))
	for _, so := range o.shopOrders {
		shopIDs = append(shopIDs, so.ShopID().String())
	}
	return OrderCreated{
		Number:     o.Number().String(),
		BuyerID:    o.BuyerID().String(),
		Total:      o.Total().String(),
		Currency:   o.Currency().String(),
		ShopIDs:    shopIDs,
		OccurredAt: at.UTC(),
	}
}

// ShopStatusChanged is raised when one shop's fulfillment status moved.
type ShopStatusChanged struct {
	Number     string    `json:"number"`
	ShopID     string    `json:"shopId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ShopStatusChanged) EventName() string   { return "order.shop_status_changed" }
func (e ShopStatusChanged) OrderNumber() string { return e.Number }
