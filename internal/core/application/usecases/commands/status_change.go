package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// StatusChangeResult reports a transition applied to a shipment.
type StatusChangeResult struct {
	ShipmentID       kernel.UUID
	Reference        string
	PreviousStatus   shipment.Status
	Status           shipment.Status
	ActualDeliveryAt *time.Time
}

func statusChangeResult(s *shipment.Shipment, previous shipment.Status) StatusChangeResult {
	return StatusChangeResult{
		ShipmentID:       s.ID(),
		Reference:        s.Reference(),
		PreviousStatus:   previous,
		Status:           s.Status(),
		ActualDeliveryAt: s.ActualDeliveryAt(),
	}
}

// recordDriverOutcome bumps the assigned driver's counters when a shipment
// leaves the active part of its lifecycle: delivered counts as a successful
// delivery, failed as an unsuccessful one. Repeated terminal statuses do not
// count twice.
func recordDriverOutcome(
	ctx context.Context,
	uow ShipmentUoW,
	s *shipment.Shipment,
	previous shipment.Status,
	logger *zap.Logger,
) error {
	if s.DriverID() == nil || previous.IsFinal() {
		return nil
	}

	var successful bool
	switch s.Status() {
	case shipment.StatusDelivered:
		successful = true
	case shipment.StatusFailed:
		successful = false
	default:
		return nil
	}

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, *s.DriverID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			logger.Warn("assigned driver no longer exists", zap.String("driver_id", s.DriverID().String()))
			return nil
		}
		return err
	}

	d.RecordDelivery(successful)
	return repo.Update(ctx, d)
}
