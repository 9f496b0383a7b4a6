package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand hard-deletes a shipment regardless of its status.
// It bypasses the state machine and is reserved for admins.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(principal kernel.Principal, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	if !principal.IsAdmin() {
		return DeleteShipmentCommand{}, ErrForbidden
	}
	if err := shipmentID.Validate(); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return DeleteShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
