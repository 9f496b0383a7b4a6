package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderStatusChange tells the order service that a shipment moved.
type OrderStatusChange struct {
	OrderReference    string      `json:"orderReference"`
	ShipmentID        kernel.UUID `json:"shipmentId"`
	ShipmentReference string      `json:"shipmentReference"`
	Status            string      `json:"status"`
	OccurredAt        time.Time   `json:"occurredAt"`
}

// OrderStatusPublisher synchronises shipment progress back to orders.
type OrderStatusPublisher interface {
	Publish(ctx context.Context, change OrderStatusChange) error
}
