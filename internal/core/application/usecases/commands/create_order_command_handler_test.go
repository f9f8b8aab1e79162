package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	buyer          kernel.UUID
	s1, s2         catalog.Shop
	p1, p2, p3     catalog.Product
	address        catalog.Address
	catalogMock    *MockCatalog
	usersMock      *MockUserDirectory
	publisherMock  *MockPublisher
	repositoryMock *MockOrderRepository
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	coords, err := kernel.NewCoordinates(1, 1)
	require.NoError(t, err)

	f := &cartFixture{
		buyer:          kernel.NewUUID(),
		s1:             catalog.Shop{ID: kernel.NewUUID(), Name: "s1", Type: catalog.ShopTypeStore},
		s2:             catalog.Shop{ID: kernel.NewUUID(), Name: "s2", Type: catalog.ShopTypeRestaurant},
		p1:             catalog.Product{ID: kernel.NewUUID(), Name: "p1"},
		p2:             catalog.Product{ID: kernel.NewUUID(), Name: "p2"},
		p3:             catalog.Product{ID: kernel.NewUUID(), Name: "p3"},
		catalogMock:    new(MockCatalog),
		usersMock:      new(MockUserDirectory),
		publisherMock:  new(MockPublisher),
		repositoryMock: new(MockOrderRepository),
	}
	f.address = catalog.Address{ID: kernel.NewUUID(), Street: "a1", City: "c", Country: "US", Coordinates: coords}

	f.usersMock.On("GetUser", mock.Anything, f.buyer).
		Return(identity.User{ID: f.buyer, Role: identity.RoleBuyer}, nil).Maybe()
	f.catalogMock.On("FindShops", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]catalog.Shop{f.s1.ID: f.s1, f.s2.ID: f.s2}, nil).Maybe()
	f.catalogMock.On("FindProducts", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]catalog.Product{f.p1.ID: f.p1, f.p2.ID: f.p2, f.p3.ID: f.p3}, nil).Maybe()
	f.catalogMock.On("FindAddresses", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]catalog.Address{f.address.ID: f.address}, nil).Maybe()
	return f
}

func (f *cartFixture) command(t *testing.T, lines ...commands.OrderLine) commands.CreateOrderCommand {
	t.Helper()
	if lines == nil {
		lines = []commands.OrderLine{
			{ProductID: f.p1.ID.String(), ShopID: f.s1.ID.String(), Price: "10"},
			{ProductID: f.p2.ID.String(), ShopID: f.s1.ID.String(), Price: "5"},
			{ProductID: f.p3.ID.String(), ShopID: f.s2.ID.String(), Price: "20"},
		}
	}
	cmd, err := commands.NewCreateOrderCommand(f.buyer, "USD", lines,
		[]string{f.s1.ID.String(), f.s2.ID.String()}, []string{f.address.ID.String()})
	require.NoError(t, err)
	return cmd
}

func (f *cartFixture) handler(factory commands.OrderUoWFactory) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(factory, f.catalogMock, f.usersMock, f.publisherMock,
		slog.New(slog.DiscardHandler))
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newCartFixture(t)
	factory, uow := newUoW(f.repositoryMock)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		f.repositoryMock.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	f.publisherMock.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	h := f.handler(factory)

	// When
	created, err := h.Handle(ctx, f.command(t))

	// Then
	require.NoError(t, err)
	assert.Equal(t, "35", created.Total().String())
	require.Len(t, created.ShopOrders(), 2)
	first, _ := created.ShopOrder(f.s1.ID)
	second, _ := created.ShopOrder(f.s2.ID)
	assert.Len(t, first.Products(), 2)
	assert.Len(t, second.Products(), 1)
	assert.Len(t, created.Locations(), 1)
	f.repositoryMock.AssertExpectations(t)
	uow.AssertExpectations(t)
	f.publisherMock.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ProductOfUnlistedShop(t *testing.T) {
	ctx := t.Context()
	f := newCartFixture(t)
	factory, _ := newUoW(f.repositoryMock)
	h := f.handler(factory)
	cmd := f.command(t, commands.OrderLine{
		ProductID: f.p1.ID.String(), ShopID: kernel.NewUUID().String(), Price: "10",
	})

	created, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrProductShopNotInOrder)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
	f.repositoryMock.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.publisherMock.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	f := newCartFixture(t)
	factory, _ := newUoW(f.repositoryMock)
	h := f.handler(factory)
	missing := kernel.NewUUID()

	_, err := h.Handle(ctx, f.command(t, commands.OrderLine{
		ProductID: missing.String(), ShopID: f.s1.ID.String(), Price: "1",
	}))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), missing.String())
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownBuyer(t *testing.T) {
	ctx := t.Context()
	f := newCartFixture(t)
	f.usersMock = new(MockUserDirectory)
	f.usersMock.On("GetUser", mock.Anything, f.buyer).
		Return(identity.User{}, errs.NewObjectNotFoundError("buyer", f.buyer)).Once()
	factory, _ := newUoW(f.repositoryMock)
	h := f.handler(factory)

	_, err := h.Handle(ctx, f.command(t))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.catalogMock.AssertNotCalled(t, "FindShops", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_RetriesNumberCollision(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newCartFixture(t)
	factory, uow := newUoW(f.repositoryMock)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	f.repositoryMock.On("Add", mock.Anything, mock.Anything).Return(ports.ErrOrderNumberTaken).Once()
	f.repositoryMock.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.publisherMock.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	h := f.handler(factory)

	// When
	created, err := h.Handle(ctx, f.command(t))

	// Then
	require.NoError(t, err)
	assert.NotNil(t, created)
	factory.AssertNumberOfCalls(t, "Create", 2)
	f.repositoryMock.AssertNumberOfCalls(t, "Add", 2)
}

func TestCreateOrderCommandHandler_Handle_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := t.Context()
	f := newCartFixture(t)
	factory, uow := newUoW(f.repositoryMock)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	f.repositoryMock.On("Add", mock.Anything, mock.Anything).Return(ports.ErrOrderNumberTaken)
	h := f.handler(factory)

	_, err := h.Handle(ctx, f.command(t))

	require.ErrorIs(t, err, ports.ErrOrderNumberTaken)
	f.repositoryMock.AssertNumberOfCalls(t, "Add", 3)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_PublishFailureKeepsOrder(t *testing.T) {
	ctx := t.Context()
	f := newCartFixture(t)
	factory, uow := newUoW(f.repositoryMock)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	f.repositoryMock.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.publisherMock.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	h := f.handler(factory)

	created, err := h.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newCartFixture(t)
	factory := new(MockOrderUoWFactory)
	h := f.handler(factory)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
