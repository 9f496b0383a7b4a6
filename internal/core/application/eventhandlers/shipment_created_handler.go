package eventhandlers

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

const (
	TemplateShipmentCreatedOps      = "shipment_created_ops"
	TemplateShipmentCreatedCustomer = "shipment_created_customer"
	TemplatePickupRequested         = "pickup_requested"
)

// ShipmentCreatedHandler announces a new shipment to operations, to the
// recipient and, for fleet shipments, to the pickup team.
type ShipmentCreatedHandler struct {
	notifier ports.Notifier
	settings Settings
	logger   *zap.Logger
}

func NewShipmentCreatedHandler(notifier ports.Notifier, settings Settings, logger *zap.Logger) *ShipmentCreatedHandler {
	return &ShipmentCreatedHandler{
		notifier: notifier,
		settings: settings,
		logger:   logger.With(zap.String("component", "shipment_created_handler")),
	}
}

func (h *ShipmentCreatedHandler) Handle(ctx context.Context, msg ports.OutboxMessage) error {
	event, err := decode[shipment.CreatedEvent](msg)
	if err != nil {
		return err
	}

	data := map[string]any{
		"eventId":           event.ID.String(),
		"shipmentReference": event.ShipmentReference,
		"orderReference":    event.OrderReference,
		"carrierName":       event.CarrierName,
		"pickupCity":        event.PickupCity,
		"deliveryCity":      event.DeliveryCity,
		"recipientName":     event.Recipient.Name,
		"totalItems":        event.TotalItems,
		"shippingFee":       event.ShippingFee,
		"currency":          event.Currency,
		"estimatedDelivery": event.EstimatedDelivery,
		"trackingUrl":       h.settings.TrackingURL(event.ShipmentReference),
	}

	var notifications []ports.Notification
	if h.settings.OpsEmail != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelEmail,
			Recipient:  h.settings.OpsEmail,
			Subject:    "New shipment " + event.ShipmentReference,
			TemplateID: TemplateShipmentCreatedOps,
			Data:       data,
		})
	}
	if event.Recipient.Email != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelEmail,
			Recipient:  event.Recipient.Email,
			Subject:    "Your order is on its way",
			TemplateID: TemplateShipmentCreatedCustomer,
			Data:       data,
		})
	}
	if event.Recipient.Phone != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelSMS,
			Recipient:  event.Recipient.Phone,
			TemplateID: TemplateShipmentCreatedCustomer,
			Data:       data,
		})
	}
	if event.CarrierType == shipment.CarrierInternal && h.settings.PickupTeamEmail != "" {
		pickup := copyData(data)
		pickup["senderName"] = event.Sender.Name
		pickup["senderPhone"] = event.Sender.Phone
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelEmail,
			Recipient:  h.settings.PickupTeamEmail,
			Subject:    "Pickup requested for " + event.ShipmentReference,
			TemplateID: TemplatePickupRequested,
			Data:       pickup,
		})
	}

	return sendAll(ctx, h.notifier, h.logger, event.ShipmentReference, notifications)
}

func sendAll(ctx context.Context, notifier ports.Notifier, logger *zap.Logger, reference string, notifications []ports.Notification) error {
	var problems []error
	for _, n := range notifications {
		if err := notifier.Send(ctx, n); err != nil {
			logger.Warn("notification not sent",
				zap.String("shipment_reference", reference),
				zap.String("template", n.TemplateID),
				zap.String("channel", string(n.Channel)),
				zap.Error(err),
			)
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}
	return out
}
