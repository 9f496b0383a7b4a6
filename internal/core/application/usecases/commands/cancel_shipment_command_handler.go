package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"go.uber.org/zap"
)

// CancelShipmentCommandHandler cancels a pending shipment. Any other status
// is rejected with shipment.ErrCancelNotAllowed and nothing is written.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *zap.Logger
}

func NewCancelShipmentCommandHandler(uowFactory ShipmentUoWFactory, logger *zap.Logger) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "cancel_shipment")),
	}
}

func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) (StatusChangeResult, error) {
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

	principal := cmd.Principal()
	if principal.Role == kernel.RoleCustomer && !s.UserID().IsEqual(principal.UserID) {
		return StatusChangeResult{}, ErrForbidden
	}

	previous := s.Status()
	err = s.Cancel(cmd.Reason(), shipment.SourceForRole(principal.Role), principal.UserID.String(), time.Now())
	if err != nil {
		return StatusChangeResult{}, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return StatusChangeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StatusChangeResult{}, err
	}

	h.logger.Info("shipment cancelled", zap.String("reference", s.Reference()))
	return statusChangeResult(s, previous), nil
}
