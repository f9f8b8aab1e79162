// Package http exposes the order service over REST and websockets (echo).
//
// Every /api route runs behind Authenticate and the request contract validator;
// role guards are applied per route.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/realtime"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateShopOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShopOrderCommand) (string, error)
	}
	AssignDelivererHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDelivererCommand) error
	}
	CorrectOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CorrectOrderCommand) (*order.Order, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (string, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
	ShopOrderViewHandler interface {
		Get(ctx context.Context, query queries.GetShopOrderViewQuery) (queries.ShopOrderViewResponse, error)
		List(ctx context.Context, query queries.ListShopOrderViewsQuery) ([]queries.ShopOrderViewResponse, error)
	}

	// Subscriber is the realtime hub as seen by websocket handlers.
	Subscriber interface {
		Subscribe(ctx context.Context, topic realtime.Topic) (*realtime.Subscription, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     CreateOrderHandler
	UpdateShopOrder UpdateShopOrderHandler
	AssignDeliverer AssignDelivererHandler
	CorrectOrder    CorrectOrderHandler
	DeleteOrder     DeleteOrderHandler
	GetOrder        GetOrderHandler
	ListOrders      ListOrdersHandler
	ShopViews       ShopOrderViewHandler
}

// Server routes HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
	hub      Subscriber
	auth     *Authenticator
	contract *Contract
	metrics  http.Handler
	observer HTTPObserver
	logger   *slog.Logger
}

type Option func(*Server)

// WithMetrics serves h on /metrics and records request durations in o.
func WithMetrics(h http.Handler, o HTTPObserver) Option {
	return func(s *Server) {
		s.metrics = h
		s.observer = o
	}
}

func NewServer(
	handlers Handlers,
	hub Subscriber,
	auth *Authenticator,
	contract *Contract,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		handlers: handlers,
		hub:      hub,
		auth:     auth,
		contract: contract,
		logger:   logger.With("component", "http_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEcho builds the echo instance with every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	if s.observer != nil {
		e.Use(RequestMetrics(s.observer))
	}
	e.Use(RequestLogger(s.logger))

	s.Register(e)
	return e
}

// Register adds the routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}
	s.contract.RegisterSwagger()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	shopStaff := RequireRoles(identity.RoleShopOwner, identity.RoleAdmin)
	admin := RequireRoles(identity.RoleAdmin)

	api := e.Group("/api/orders", Authenticate(s.auth), s.contract.Validator())

	api.GET("", s.ListOrders, admin)
	api.POST("", s.CreateOrder)
	api.GET("/realtime", s.StreamOrders, admin)
	api.GET("/shop/realtime/:shopId", s.StreamShopOrders, shopStaff)
	api.GET("/shop/:shopId", s.ListOrdersByShop, shopStaff)
	api.GET("/status/:status", s.ListOrdersByStatus, shopStaff)
	api.GET("/shop/:shopId/status/:status", s.ListOrdersByShopAndStatus, shopStaff)
	api.GET("/shop/:shopId/:orderNumber", s.GetShopOrderView, shopStaff)
	api.PUT("/shop/:shopId/:orderNumber", s.UpdateShopOrder, shopStaff)
	api.GET("/:id", s.GetOrder)
	api.PUT("/:id/deliverer", s.AssignDeliverer, RequireRoles(identity.RoleDeliverer, identity.RoleAdmin))
	api.PUT("/:id", s.CorrectOrder, admin)
	api.DELETE("/:id", s.DeleteOrder, admin)
}
