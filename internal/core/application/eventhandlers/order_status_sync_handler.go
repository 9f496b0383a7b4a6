package eventhandlers

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// OrderStatusSyncHandler mirrors shipment creation and status changes to the
// order service. Shipments without an order reference are not synced.
type OrderStatusSyncHandler struct {
	publisher ports.OrderStatusPublisher
	logger    *zap.Logger
}

func NewOrderStatusSyncHandler(publisher ports.OrderStatusPublisher, logger *zap.Logger) *OrderStatusSyncHandler {
	return &OrderStatusSyncHandler{
		publisher: publisher,
		logger:    logger.With(zap.String("component", "order_status_sync")),
	}
}

func (h *OrderStatusSyncHandler) Handle(ctx context.Context, msg ports.OutboxMessage) error {
	change, err := h.changeFor(msg)
	if err != nil {
		return err
	}
	if change.OrderReference == "" {
		return nil
	}

	if err = h.publisher.Publish(ctx, change); err != nil {
		h.logger.Warn("order status not published",
			zap.String("order_reference", change.OrderReference),
			zap.String("status", change.Status),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *OrderStatusSyncHandler) changeFor(msg ports.OutboxMessage) (ports.OrderStatusChange, error) {
	switch msg.EventType {
	case shipment.EventTypeCreated:
		event, err := decode[shipment.CreatedEvent](msg)
		if err != nil {
			return ports.OrderStatusChange{}, err
		}
		return ports.OrderStatusChange{
			OrderReference:    event.OrderReference,
			ShipmentID:        event.ShipmentID,
			ShipmentReference: event.ShipmentReference,
			Status:            string(shipment.StatusPending),
			OccurredAt:        event.Occurred,
		}, nil
	case shipment.EventTypeStatusChanged:
		event, err := decode[shipment.StatusChangedEvent](msg)
		if err != nil {
			return ports.OrderStatusChange{}, err
		}
		return ports.OrderStatusChange{
			OrderReference:    event.OrderReference,
			ShipmentID:        event.ShipmentID,
			ShipmentReference: event.ShipmentReference,
			Status:            string(event.Status),
			OccurredAt:        event.Occurred,
		}, nil
	default:
		return ports.OrderStatusChange{}, fmt.Errorf("order status sync cannot handle %q", msg.EventType)
	}
}
