// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CreateShipmentUoW spans everything the creation transaction writes or
	// reads: addresses, the shipment, the driver claim and the route quote.
	CreateShipmentUoW interface {
		TxManager
		AddressRepoFactory
		ShipmentRepoFactory
		DriverRepoFactory
		RouteRepoFactory
	}

	CreateShipmentUoWFactory interface {
		Create() CreateShipmentUoW
	}

	// ShipmentUoW manages transactions that move an existing shipment.
	// Driver access is needed for delivery counters.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		DriverRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
