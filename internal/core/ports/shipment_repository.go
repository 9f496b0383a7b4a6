// Package ports defines the contracts between the fulfillment domain and its
// infrastructure: repositories, the unit of work and the outbound side-effect
// channels (notifications, order status sync).
package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ErrDuplicateShipmentReference is returned by ShipmentRepository.Add when the
// generated reference is already taken. The failed insert does not poison the
// surrounding transaction, so callers may regenerate and retry.
var ErrDuplicateShipmentReference = errors.New("shipment reference already exists")

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add stores a new shipment with its items and pending tracking events.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update stores the shipment row and appends its pending tracking events.
	// Items and existing events are never rewritten.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a shipment by id and locks its row for the rest of the transaction.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByExternalReference loads an external shipment by the carrier's reference.
	GetByExternalReference(ctx context.Context, reference string) (*shipment.Shipment, error)

	// Delete hard-removes a shipment with its items, tracking events and both addresses.
	Delete(ctx context.Context, id kernel.UUID) error
}
