package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"

	"go.uber.org/zap"
)

// lastWebhookKey is where the raw carrier payload is kept in shipment metadata.
const lastWebhookKey = "last_webhook"

// ReconcileCarrierUpdateCommandHandler applies an external carrier's status
// report to the matching external shipment.
//
// The payload must name the shipment via trackingNumber, reference or
// carrierReference (services.ErrNoReferenceFound otherwise). The reported status
// goes through the carrier status table and then through the normal state
// machine with source carrier_api. Replaying the same callback appends another
// tracking event. An update from a carrier other than the one the shipment was
// booked with is still applied and logged as a warning.
type ReconcileCarrierUpdateCommandHandler struct {
	uowFactory ShipmentUoWFactory
	mapper     services.CarrierStatusMapper
	logger     *zap.Logger
}

func NewReconcileCarrierUpdateCommandHandler(uowFactory ShipmentUoWFactory, logger *zap.Logger) ReconcileCarrierUpdateCommandHandler {
	return ReconcileCarrierUpdateCommandHandler{
		uowFactory: uowFactory,
		mapper:     services.NewCarrierStatusMapper(),
		logger:     logger.With(zap.String("component", "carrier_reconciler")),
	}
}

func (h *ReconcileCarrierUpdateCommandHandler) Handle(ctx context.Context, cmd ReconcileCarrierUpdateCommand) (StatusChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return StatusChangeResult{}, err
	}

	payload := cmd.Payload()
	reference, err := h.mapper.Reference(payload)
	if err != nil {
		return StatusChangeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return StatusChangeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.GetByExternalReference(ctx, reference)
	if err != nil {
		return StatusChangeResult{}, err
	}

	if slug := s.CarrierSlug(); slug != "" && slug != cmd.CarrierSlug() {
		h.logger.Warn("carrier update for a shipment booked with another carrier",
			zap.String("carrier", cmd.CarrierSlug()),
			zap.String("shipment_carrier", slug),
			zap.String("reference", s.Reference()),
		)
	}

	raw := kernel.SanitizeMetadata(payload)
	if err = s.AttachMetadata(lastWebhookKey, raw); err != nil {
		return StatusChangeResult{}, err
	}

	reported, _ := raw.String("status")
	previous, err := s.ChangeStatus(shipment.StatusChange{
		Status:      h.mapper.Status(payload),
		Description: fmt.Sprintf("Status update from %s", cmd.CarrierSlug()),
		Location:    stringField(raw, "location"),
		Source:      shipment.SourceCarrierAPI,
		PerformedBy: cmd.CarrierSlug(),
		Metadata: kernel.Metadata{
			"carrier":        cmd.CarrierSlug(),
			"carrierStatus":  reported,
			"carrierPayload": raw,
		},
	}, time.Now())
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

	h.logger.Info("carrier update applied",
		zap.String("carrier", cmd.CarrierSlug()),
		zap.String("reference", s.Reference()),
		zap.String("carrier_status", reported),
		zap.String("status", s.Status().String()),
	)

	return statusChangeResult(s, previous), nil
}

func stringField(m kernel.Metadata, key string) string {
	s, _ := m.String(key)
	return s
}
