package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
//
// Repositories obtained from it run inside the transaction started by Begin.
// On Commit the domain events recorded by every tracked aggregate are written
// to the outbox in the same transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes pending outbox messages and commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and forgets tracked aggregates.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	ShipmentRepository() ShipmentRepository
	AddressRepository() AddressRepository
	DriverRepository() DriverRepository
	RouteRepository() RouteRepository
	OutboxRepository() OutboxRepository
}
