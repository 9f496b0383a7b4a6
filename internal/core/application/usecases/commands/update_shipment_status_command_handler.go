package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UpdateShipmentStatusCommandHandler applies a manual status change.
//
// The shipment row is locked for the duration of the unit of work. The change
// must pass the state machine; a rejected transition leaves the shipment and
// its history untouched.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *zap.Logger
}

func NewUpdateShipmentStatusCommandHandler(uowFactory ShipmentUoWFactory, logger *zap.Logger) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "update_shipment_status")),
	}
}

func (h *UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) (StatusChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return StatusChangeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StatusChangeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return StatusChangeResult{}, err
	}

	previous, err := s.ChangeStatus(cmd.Change(), time.Now())
	if err != nil {
		return StatusChangeResult{}, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return StatusChangeResult{}, err
	}

	if err = recordDriverOutcome(ctx, uow, s, previous, h.logger); err != nil {
		return StatusChangeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StatusChangeResult{}, err
	}

	h.logger.Info("shipment status changed",
		zap.String("reference", s.Reference()),
		zap.String("from", previous.String()),
		zap.String("to", s.Status().String()),
	)

	return statusChangeResult(s, previous), nil
}
