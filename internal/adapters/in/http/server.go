package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// Handler is any command or query handler producing a result.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, request Q) (R, error)
}

// CommandHandler is a command handler with no result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Command handlers
	CreateShipment       Handler[commands.CreateShipmentCommand, commands.CreateShipmentResult]
	UpdateShipmentStatus Handler[commands.UpdateShipmentStatusCommand, commands.StatusChangeResult]
	CancelShipment       Handler[commands.CancelShipmentCommand, commands.StatusChangeResult]
	DeleteShipment       CommandHandler[commands.DeleteShipmentCommand]
	ReconcileCarrier     Handler[commands.ReconcileCarrierUpdateCommand, commands.StatusChangeResult]
	CreateRouteTemplate  Handler[commands.CreateRouteTemplateCommand, kernel.UUID]
	UpdateRouteTemplate  CommandHandler[commands.UpdateRouteTemplateCommand]
	DeleteRouteTemplate  CommandHandler[commands.DeleteRouteTemplateCommand]
	CreateDriver         Handler[commands.CreateDriverCommand, kernel.UUID]
	ChangeDriverStatus   CommandHandler[commands.ChangeDriverStatusCommand]

	// Query handlers
	TrackShipment      Handler[queries.TrackShipmentQuery, queries.TrackShipmentQueryResponse]
	ListShipments      Handler[queries.ListShipmentsQuery, queries.ListShipmentsQueryResponse]
	GetRouteTemplate   Handler[queries.GetRouteTemplateQuery, queries.RouteTemplateView]
	ListRouteTemplates Handler[queries.ListRouteTemplatesQuery, []queries.RouteTemplateView]
	MatchRoute         Handler[queries.MatchRouteQuery, queries.MatchRouteQueryResponse]
}

// Server turns HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers        Handlers
	trackingBaseURL string
	logger          *zap.Logger
}

func NewServer(handlers Handlers, trackingBaseURL string, logger *zap.Logger) *Server {
	return &Server{
		handlers:        handlers,
		trackingBaseURL: trackingBaseURL,
		logger:          logger.With(zap.String("component", "http")),
	}
}
