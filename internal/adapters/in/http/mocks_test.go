package http_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateShopOrderHandler struct{ mock.Mock }

func (m *MockUpdateShopOrderHandler) Handle(ctx context.Context, cmd commands.UpdateShopOrderCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockAssignDelivererHandler struct{ mock.Mock }

func (m *MockAssignDelivererHandler) Handle(ctx context.Context, cmd commands.AssignDelivererCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCorrectOrderHandler struct{ mock.Mock }

func (m *MockCorrectOrderHandler) Handle(ctx context.Context, cmd commands.CorrectOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeleteOrderHandler struct{ mock.Mock }

func (m *MockDeleteOrderHandler) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.OrderResponse)
	return resp, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).([]queries.OrderResponse)
	return resp, args.Error(1)
}

type MockShopOrderViewHandler struct{ mock.Mock }

func (m *MockShopOrderViewHandler) Get(
	ctx context.Context, query queries.GetShopOrderViewQuery,
) (queries.ShopOrderViewResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.ShopOrderViewResponse)
	return resp, args.Error(1)
}

func (m *MockShopOrderViewHandler) List(
	ctx context.Context, query queries.ListShopOrderViewsQuery,
) ([]queries.ShopOrderViewResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).([]queries.ShopOrderViewResponse)
	return resp, args.Error(1)
}
