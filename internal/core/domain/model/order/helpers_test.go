package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustCurrency(t *testing.T, code string) kernel.Currency {
	t.Helper()
	c, err := kernel.NewCurrency(code)
	require.NoError(t, err)
	return c
}

func mustProduct(t *testing.T, price string) order.ProductOrder {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	p, err := order.NewProductOrder(order.ProductOrderParams{
		ProductID:  kernel.NewUUID(),
		Slug:       "product",
		Name:       "Product",
		Price:      m,
		Currency:   mustCurrency(t, "USD"),
		Dimensions: order.Dimensions{Width: 1, Height: 2, Depth: 3, Weight: 4},
		Image:      "a.png",
	})
	require.NoError(t, err)
	return p
}

func mustShopOrder(t *testing.T, prices ...string) *order.ShopOrder {
	t.Helper()
	so, err := order.NewShopOrder(kernel.NewUUID(), "corner-shop", "Corner Shop", "logo.png", catalog.ShopTypeStore)
	require.NoError(t, err)
	for _, p := range prices {
		require.NoError(t, so.AddProduct(mustProduct(t, p)))
	}
	return so
}

func mustLocation(t *testing.T) order.LocationOrder {
	t.Helper()
	coords, err := kernel.NewCoordinates(52.52, 13.405)
	require.NoError(t, err)
	l, err := order.NewLocationOrder(kernel.NewUUID(), "Main St 1", "10115", "Berlin", "DE", coords)
	require.NoError(t, err)
	return l
}

func mustNumber(t *testing.T) order.Number {
	t.Helper()
	n, err := order.NewNumber()
	require.NoError(t, err)
	return n
}
