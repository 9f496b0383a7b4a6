package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand asks to cancel a pending shipment. Customers may only
// cancel shipments they created; the handler checks ownership.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	principal  kernel.Principal
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelShipmentCommand(principal kernel.Principal, shipmentID kernel.UUID, reason string) (CancelShipmentCommand, error) {
	if !principal.HasRole(kernel.RoleAdmin, kernel.RoleCustomer) {
		return CancelShipmentCommand{}, ErrForbidden
	}
	if err := shipmentID.Validate(); err != nil {
		return CancelShipmentCommand{}, errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}

	return CancelShipmentCommand{
		principal:  principal,
		shipmentID: shipmentID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

func (c CancelShipmentCommand) Principal() kernel.Principal {
	return c.principal
}

func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CancelShipmentCommand) Reason() string {
	return c.reason
}
