package eventhandlers

import (
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// Registry maps every shipment event type onto the handlers the outbox relay
// calls for it.
func Registry(
	notifier ports.Notifier,
	publisher ports.OrderStatusPublisher,
	addresses AddressReader,
	settings Settings,
	logger *zap.Logger,
) map[string][]ports.EventHandler {
	orderSync := NewOrderStatusSyncHandler(publisher, logger)

	return map[string][]ports.EventHandler{
		shipment.EventTypeCreated: {
			NewShipmentCreatedHandler(notifier, settings, logger),
			orderSync,
		},
		shipment.EventTypeDriverAssigned: {
			NewDriverAssignedHandler(notifier, settings, logger),
		},
		shipment.EventTypeStatusChanged: {
			NewStatusChangedHandler(notifier, addresses, settings, logger),
			orderSync,
		},
	}
}
