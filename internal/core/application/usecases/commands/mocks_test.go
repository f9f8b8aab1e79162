package commands_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetShopOrderForUpdate(
	ctx context.Context, number order.Number, shopID kernel.UUID,
) (*order.ShopOrder, error) {
	args := m.Called(ctx, number, shopID)
	so, _ := args.Get(0).(*order.ShopOrder)
	return so, args.Error(1)
}

func (m *MockOrderRepository) UpdateShopOrder(ctx context.Context, number order.Number, so *order.ShopOrder) error {
	args := m.Called(ctx, number, so)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateDeliverer(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Replace(ctx context.Context, o *order.Order, c order.Correction) error {
	args := m.Called(ctx, o, c)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, number order.Number) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) FindProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Product, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[kernel.UUID]catalog.Product)
	return found, args.Error(1)
}

func (m *MockCatalog) FindShops(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Shop, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[kernel.UUID]catalog.Shop)
	return found, args.Error(1)
}

func (m *MockCatalog) FindAddresses(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Address, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[kernel.UUID]catalog.Address)
	return found, args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) GetUser(ctx context.Context, id kernel.UUID) (identity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(identity.User)
	return user, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// newUoW wires a factory that hands out uow with repo attached.
func newUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}
