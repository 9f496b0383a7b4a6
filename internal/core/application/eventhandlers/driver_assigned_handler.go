package eventhandlers

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

const TemplateDriverAssigned = "driver_assigned"

// DriverAssignedHandler tells the driver about the pickup they were given.
// A driver without contact details is skipped.
type DriverAssignedHandler struct {
	notifier ports.Notifier
	settings Settings
	logger   *zap.Logger
}

func NewDriverAssignedHandler(notifier ports.Notifier, settings Settings, logger *zap.Logger) *DriverAssignedHandler {
	return &DriverAssignedHandler{
		notifier: notifier,
		settings: settings,
		logger:   logger.With(zap.String("component", "driver_assigned_handler")),
	}
}

func (h *DriverAssignedHandler) Handle(ctx context.Context, msg ports.OutboxMessage) error {
	event, err := decode[shipment.DriverAssignedEvent](msg)
	if err != nil {
		return err
	}

	data := map[string]any{
		"eventId":           event.ID.String(),
		"shipmentReference": event.ShipmentReference,
		"driverCode":        event.DriverCode,
		"driverName":        event.Driver.Name,
		"pickupCity":        event.PickupCity,
		"deliveryCity":      event.DeliveryCity,
		"trackingUrl":       h.settings.TrackingURL(event.ShipmentReference),
	}

	var notifications []ports.Notification
	if event.Driver.Email != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelEmail,
			Recipient:  event.Driver.Email,
			Subject:    "New pickup " + event.ShipmentReference,
			TemplateID: TemplateDriverAssigned,
			Data:       data,
		})
	}
	if event.Driver.Phone != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelSMS,
			Recipient:  event.Driver.Phone,
			TemplateID: TemplateDriverAssigned,
			Data:       data,
		})
	}
	if len(notifications) == 0 {
		h.logger.Info("driver has no contact details",
			zap.String("shipment_reference", event.ShipmentReference),
			zap.String("driver_code", event.DriverCode),
		)
		return nil
	}

	return sendAll(ctx, h.notifier, h.logger, event.ShipmentReference, notifications)
}
