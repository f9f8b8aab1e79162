package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// ListOrdersByShop handles GET /api/orders/shop/:shopId.
func (s *Server) ListOrdersByShop(c echo.Context) error {
	shopID, err := pathParam(c, "shopId")
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersByShopQuery(shopID)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

// ListOrdersByStatus handles GET /api/orders/status/:status.
func (s *Server) ListOrdersByStatus(c echo.Context) error {
	status, err := pathParam(c, "status")
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersByStatusQuery(status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

// ListOrdersByShopAndStatus handles GET /api/orders/shop/:shopId/status/:status.
func (s *Server) ListOrdersByShopAndStatus(c echo.Context) error {
	shopID, err := pathParam(c, "shopId")
	if err != nil {
		return err
	}
	status, err := pathParam(c, "status")
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersByShopAndStatusQuery(shopID, status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

func (s *Server) listOrders(c echo.Context, query queries.ListOrdersQuery) error {
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id. Only the buyer, the deliverer and
// administrators may read the order; shop staff use their shop view.
func (s *Server) GetOrder(c echo.Context) error {
	principal, ok := PrincipalFrom(c)
	if !ok {
		return ErrUnauthenticated
	}

	number, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(number)
	if err != nil {
		return err
	}
	got, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if !canReadOrder(principal, got) {
		return fmt.Errorf("%w: %s cannot read order %s", ErrForbidden, principal.Role, got.Number)
	}
	return c.JSON(http.StatusOK, got)
}

// canReadOrder lets deliverers see unassigned orders so they can take one.
func canReadOrder(p identity.Principal, o queries.OrderResponse) bool {
	caller := p.UserID.String()
	switch p.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleBuyer:
		return o.BuyerID == caller
	case identity.RoleDeliverer:
		return o.DelivererID == nil || *o.DelivererID == caller
	default:
		return false
	}
}

// GetShopOrderView handles GET /api/orders/shop/:shopId/:orderNumber.
func (s *Server) GetShopOrderView(c echo.Context) error {
	shopID, err := pathParam(c, "shopId")
	if err != nil {
		return err
	}
	number, err := pathParam(c, "orderNumber")
	if err != nil {
		return err
	}
	query, err := queries.NewGetShopOrderViewQuery(shopID, number)
	if err != nil {
		return err
	}
	view, err := s.handlers.ShopViews.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CreateOrder handles POST /api/orders. The buyer is the caller.
func (s *Server) CreateOrder(c echo.Context) error {
	principal, ok := PrincipalFrom(c)
	if !ok {
		return ErrUnauthenticated
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(principal.UserID, req.Currency, req.lines(), req.Shops, req.Addresses)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, queries.NewOrderResponse(created))
}

// UpdateShopOrder handles PUT /api/orders/shop/:shopId/:orderNumber. Status and
// pickup time are applied together or not at all.
func (s *Server) UpdateShopOrder(c echo.Context) error {
	shopID, err := pathParam(c, "shopId")
	if err != nil {
		return err
	}
	number, err := pathParam(c, "orderNumber")
	if err != nil {
		return err
	}

	var req ShopOrderUpdateRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShopOrderCommand(number, shopID, req.Status, req.PickupTime)
	if err != nil {
		return err
	}
	message, err := s.handlers.UpdateShopOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// AssignDeliverer handles PUT /api/orders/:id/deliverer.
func (s *Server) AssignDeliverer(c echo.Context) error {
	number, err := pathParam(c, "id")
	if err != nil {
		return err
	}

	var req AssignDelivererRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignDelivererCommand(number, req.DelivererID)
	if err != nil {
		return err
	}
	if err = s.handlers.AssignDeliverer.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("%s assigned to %s", cmd.DelivererID(), cmd.Number()),
	})
}

// CorrectOrder handles PUT /api/orders/:id.
func (s *Server) CorrectOrder(c echo.Context) error {
	number, err := pathParam(c, "id")
	if err != nil {
		return err
	}

	var req CorrectOrderRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCorrectOrderCommand(number, req.Currency, req.shops(), req.locations())
	if err != nil {
		return err
	}
	corrected, err := s.handlers.CorrectOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewOrderResponse(corrected))
}

// DeleteOrder handles DELETE /api/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	number, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(number)
	if err != nil {
		return err
	}
	message, err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func pathParam(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
