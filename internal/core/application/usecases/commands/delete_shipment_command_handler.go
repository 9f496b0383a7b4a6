package commands

import (
	"context"

	"go.uber.org/zap"
)

type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *zap.Logger
}

func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory, logger *zap.Logger) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "delete_shipment")),
	}
}

// Handle removes the shipment, its items, its tracking events and both addresses.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Delete(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("shipment deleted", zap.String("shipment_id", cmd.ShipmentID().String()))
	return nil
}
