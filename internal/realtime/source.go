package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace/internal/core/application/usecases/queries"
)

// Source produces the current payload of a topic.
type Source interface {
	Snapshot(ctx context.Context, topic Topic) ([]byte, error)
}

type (
	OrdersLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}

	ShopViewLister interface {
		List(ctx context.Context, query queries.ListShopOrderViewsQuery) ([]queries.ShopOrderViewResponse, error)
	}
)

// Frame is the JSON document sent to subscribers.
type Frame struct {
	Topic  Topic `json:"topic"`
	Orders any   `json:"orders"`
}

// QuerySource answers snapshots from the order store queries.
type QuerySource struct {
	orders OrdersLister
	shops  ShopViewLister
}

func NewQuerySource(orders OrdersLister, shops ShopViewLister) *QuerySource {
	return &QuerySource{orders: orders, shops: shops}
}

func (s *QuerySource) Snapshot(ctx context.Context, topic Topic) ([]byte, error) {
	var data any

	if shopID, ok := topic.ShopID(); ok {
		query, err := queries.NewListShopOrderViewsQuery(shopID)
		if err != nil {
			return nil, err
		}
		views, err := s.shops.List(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("list views of shop %s: %w", shopID, err)
		}
		data = views
	} else {
		orders, err := s.orders.Handle(ctx, queries.NewListOrdersQuery())
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		data = orders
	}

	return json.Marshal(Frame{Topic: topic, Orders: data})
}
