package eventhandlers

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

const TemplateStatusChanged = "shipment_status_changed"

// AddressReader loads the address a notification is sent to.
type AddressReader interface {
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)
}

// StatusChangedHandler keeps the recipient informed about shipment progress.
// The contact comes from the delivery address so it reflects what was stored.
type StatusChangedHandler struct {
	notifier  ports.Notifier
	addresses AddressReader
	settings  Settings
	logger    *zap.Logger
}

func NewStatusChangedHandler(
	notifier ports.Notifier,
	addresses AddressReader,
	settings Settings,
	logger *zap.Logger,
) *StatusChangedHandler {
	return &StatusChangedHandler{
		notifier:  notifier,
		addresses: addresses,
		settings:  settings,
		logger:    logger.With(zap.String("component", "status_changed_handler")),
	}
}

func (h *StatusChangedHandler) Handle(ctx context.Context, msg ports.OutboxMessage) error {
	event, err := decode[shipment.StatusChangedEvent](msg)
	if err != nil {
		return err
	}

	recipient, err := h.addresses.Get(ctx, event.DeliveryAddressID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// the shipment was deleted before the relay caught up
		h.logger.Info("delivery address gone, status notice dropped",
			zap.String("shipment_reference", event.ShipmentReference))
		return nil
	}
	if err != nil {
		return err
	}

	data := map[string]any{
		"eventId":           event.ID.String(),
		"shipmentReference": event.ShipmentReference,
		"orderReference":    event.OrderReference,
		"recipientName":     recipient.Name(),
		"previousStatus":    string(event.PreviousStatus),
		"status":            string(event.Status),
		"description":       event.Description,
		"location":          event.Location,
		"trackingUrl":       h.settings.TrackingURL(event.ShipmentReference),
	}

	var notifications []ports.Notification
	if email := recipient.Email(); email != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelEmail,
			Recipient:  email,
			Subject:    "Shipment " + event.ShipmentReference + " is " + string(event.Status),
			TemplateID: TemplateStatusChanged,
			Data:       data,
		})
	}
	if phone := recipient.Phone(); phone != "" {
		notifications = append(notifications, ports.Notification{
			Channel:    ports.ChannelSMS,
			Recipient:  phone,
			TemplateID: TemplateStatusChanged,
			Data:       data,
		})
	}

	return sendAll(ctx, h.notifier, h.logger, event.ShipmentReference, notifications)
}
