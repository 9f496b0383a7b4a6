package cmd

import (
	"context"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/routerepo"
	"fulfillment/internal/core/application/eventhandlers"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Adapters are the outbound brokers. Nil members fall back to logging.
type Adapters struct {
	Notifier  ports.Notifier
	Publisher ports.OrderStatusPublisher
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	adapters   Adapters
	logger     *zap.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, adapters Adapters, logger *zap.Logger) CompositionRoot {
	if adapters.Notifier == nil {
		adapters.Notifier = logNotifier{logger: logger.With(zap.String("component", "notifier"))}
	}
	if adapters.Publisher == nil {
		adapters.Publisher = logPublisher{logger: logger.With(zap.String("component", "order_status_publisher"))}
	}
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		adapters:   adapters,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.CreateShipmentUoWFactory = FuncCreateShipmentUoWFactory(func() commands.CreateShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.configs.DefaultCurrency, c.logger)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	return commands.NewUpdateShipmentStatusCommandHandler(c.shipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateReconcileCarrierUpdateCommandHandler() commands.ReconcileCarrierUpdateCommandHandler {
	return commands.NewReconcileCarrierUpdateCommandHandler(c.shipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRouteTemplateCommandHandler() commands.CreateRouteTemplateCommandHandler {
	return commands.NewCreateRouteTemplateCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRouteTemplateCommandHandler() commands.UpdateRouteTemplateCommandHandler {
	return commands.NewUpdateRouteTemplateCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateDeleteRouteTemplateCommandHandler() commands.DeleteRouteTemplateCommandHandler {
	return commands.NewDeleteRouteTemplateCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateChangeDriverStatusCommandHandler() commands.ChangeDriverStatusCommandHandler {
	return commands.NewChangeDriverStatusCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateProcessOutboxCommandHandler() commands.ProcessOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	settings := eventhandlers.Settings{
		OpsEmail:        c.configs.OpsEmail,
		PickupTeamEmail: c.configs.PickupTeamEmail,
		TrackingBaseURL: c.configs.TrackingBaseURL,
	}
	handlers := eventhandlers.Registry(
		c.adapters.Notifier,
		c.adapters.Publisher,
		addressrepo.NewGormAddressRepository(c.gormDB),
		settings,
		c.logger,
	)
	options := commands.OutboxOptions{
		BatchSize:   c.configs.OutboxBatchSize,
		MaxAttempts: c.configs.OutboxMaxAttempts,
	}
	return commands.NewProcessOutboxCommandHandler(f, handlers, options, c.logger)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) routeCatalog() queries.RouteCatalog {
	return routerepo.NewGormRouteRepository(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteTemplateQueryHandler() queries.GetRouteTemplateQueryHandler {
	return queries.NewGetRouteTemplateQueryHandler(c.routeCatalog())
}

func (c *CompositionRoot) CreateListRouteTemplatesQueryHandler() queries.ListRouteTemplatesQueryHandler {
	return queries.NewListRouteTemplatesQueryHandler(c.routeCatalog())
}

func (c *CompositionRoot) CreateMatchRouteQueryHandler() queries.MatchRouteQueryHandler {
	return queries.NewMatchRouteQueryHandler(c.routeCatalog())
}

// HTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) HTTPHandlers() http.Handlers {
	createShipment := c.CreateCreateShipmentCommandHandler()
	updateStatus := c.CreateUpdateShipmentStatusCommandHandler()
	cancelShipment := c.CreateCancelShipmentCommandHandler()
	deleteShipment := c.CreateDeleteShipmentCommandHandler()
	reconcile := c.CreateReconcileCarrierUpdateCommandHandler()
	createRoute := c.CreateCreateRouteTemplateCommandHandler()
	updateRoute := c.CreateUpdateRouteTemplateCommandHandler()
	deleteRoute := c.CreateDeleteRouteTemplateCommandHandler()
	createDriver := c.CreateCreateDriverCommandHandler()
	changeDriverStatus := c.CreateChangeDriverStatusCommandHandler()

	return http.Handlers{
		CreateShipment:       &createShipment,
		UpdateShipmentStatus: &updateStatus,
		CancelShipment:       &cancelShipment,
		DeleteShipment:       &deleteShipment,
		ReconcileCarrier:     &reconcile,
		CreateRouteTemplate:  &createRoute,
		UpdateRouteTemplate:  &updateRoute,
		DeleteRouteTemplate:  &deleteRoute,
		CreateDriver:         &createDriver,
		ChangeDriverStatus:   &changeDriverStatus,

		TrackShipment:      c.CreateTrackShipmentQueryHandler(),
		ListShipments:      c.CreateListShipmentsQueryHandler(),
		GetRouteTemplate:   c.CreateGetRouteTemplateQueryHandler(),
		ListRouteTemplates: c.CreateListRouteTemplatesQueryHandler(),
		MatchRoute:         c.CreateMatchRouteQueryHandler(),
	}
}

func (c *CompositionRoot) CreateOutboxRelayJob() *jobs.OutboxRelayJob {
	return jobs.NewOutboxRelayJob(c.CreateProcessOutboxCommandHandler(), c.configs.OutboxSchedule, c.logger)
}

type FuncCreateShipmentUoWFactory func() commands.CreateShipmentUoW

func (f FuncCreateShipmentUoWFactory) Create() commands.CreateShipmentUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

// logNotifier stands in for the dispatcher when RabbitMQ is not configured.
type logNotifier struct {
	logger *zap.Logger
}

func (n logNotifier) Send(_ context.Context, notification ports.Notification) error {
	n.logger.Info("notification not dispatched, no broker configured",
		zap.String("channel", string(notification.Channel)),
		zap.String("templateId", notification.TemplateID),
	)
	return nil
}

type logPublisher struct {
	logger *zap.Logger
}

func (p logPublisher) Publish(_ context.Context, change ports.OrderStatusChange) error {
	p.logger.Info("order status change not published, no broker configured",
		zap.String("orderReference", change.OrderReference),
		zap.String("status", change.Status),
	)
	return nil
}
