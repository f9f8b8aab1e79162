package cmd

import (
	"errors"
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/eventbus"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/pubsub"
	"marketplace/internal/adapters/out/pubsub/pgnotify"
	"marketplace/internal/adapters/out/pubsub/redisnotify"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/realtime"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg       Config
	gormDB    *gorm.DB
	logger    *slog.Logger
	metrics   *metrics.Metrics
	notifier  ports.ChangeNotifier
	feed      ports.ChangeFeed
	publisher ports.EventPublisher
	catalog   *catalogrepo.GormCatalogRepository

	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *realtime.Hub

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:     cfg,
		gormDB:  gormDB,
		logger:  logger,
		metrics: metrics.New(),
		catalog: catalogrepo.NewGormCatalogRepository(gormDB),
	}

	c.notifier, c.feed = c.changeTransport()
	c.publisher = metrics.NewCountingPublisher(c.eventPublisher(), c.metrics)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.notifier, logger)
	c.hub = realtime.NewHub(
		realtime.NewQuerySource(c.CreateListOrdersQueryHandler(), c.CreateShopOrderViewQueryHandler()),
		realtime.Config{MaxSubscribers: cfg.HubMaxSubscribers, BufferSize: cfg.HubBufferSize},
		c.metrics,
		logger,
	)
	return c
}

func (c *CompositionRoot) changeTransport() (ports.ChangeNotifier, ports.ChangeFeed) {
	switch c.cfg.Notifier {
	case NotifierPostgres:
		return pgnotify.NewNotifier(c.gormDB), pgnotify.NewFeed(c.cfg.DatabaseURL(), c.logger)
	case NotifierRedis:
		client := redis.NewClient(&redis.Options{Addr: c.cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		transport := redisnotify.New(client, c.logger)
		return transport, transport
	default:
		bus := pubsub.NewBus(c.logger)
		return bus, bus
	}
}

func (c *CompositionRoot) eventPublisher() ports.EventPublisher {
	if len(c.cfg.KafkaBrokers) == 0 {
		return eventbus.NewLogPublisher(c.logger)
	}
	publisher := eventbus.NewKafkaPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaOrderEventsTopic)
	c.closers = append(c.closers, publisher.Close)
	return publisher
}

func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) ChangeFeed() ports.ChangeFeed {
	return c.feed
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog, c.catalog, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateShopOrderCommandHandler() commands.UpdateShopOrderCommandHandler {
	return commands.NewUpdateShopOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignDelivererCommandHandler() commands.AssignDelivererCommandHandler {
	return commands.NewAssignDelivererCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateCorrectOrderCommandHandler() commands.CorrectOrderCommandHandler {
	return commands.NewCorrectOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateShopOrderViewQueryHandler() queries.ShopOrderViewQueryHandler {
	return queries.NewShopOrderViewQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	tracking := jobs.NewOrderTrackingJob(c.hub, c.cfg.TrackingSchedule, 0, c.logger)
	return jobs.NewJobManager(tracking)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	contract, err := httpadapter.LoadContract()
	if err != nil {
		return nil, err
	}

	createOrder := c.CreateCreateOrderCommandHandler()
	update := c.CreateUpdateShopOrderCommandHandler()
	assign := c.CreateAssignDelivererCommandHandler()
	correct := c.CreateCorrectOrderCommandHandler()
	remove := c.CreateDeleteOrderCommandHandler()

	handlers := httpadapter.Handlers{
		CreateOrder:     &createOrder,
		UpdateShopOrder: &update,
		AssignDeliverer: &assign,
		CorrectOrder:    &correct,
		DeleteOrder:     &remove,
		GetOrder:        c.CreateGetOrderQueryHandler(),
		ListOrders:      c.CreateListOrdersQueryHandler(),
		ShopViews:       c.CreateShopOrderViewQueryHandler(),
	}

	return httpadapter.NewServer(
		handlers,
		c.hub,
		httpadapter.NewAuthenticator(c.cfg.JWTSecret),
		contract,
		c.logger,
		httpadapter.WithMetrics(c.metrics.Handler(), c.metrics),
	), nil
}

// Close releases the broker and cache clients.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	return err
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
