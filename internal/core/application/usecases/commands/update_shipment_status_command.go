package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
		"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
	)

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("operation is not permitted for this caller")
)

// StatusUpdateRequest is the body of a manual status update.
type StatusUpdateRequest struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Source      string         `json:"source,omitempty"`
	PerformedBy string         `json:"performedBy,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// UpdateShipmentStatusCommand moves a shipment through the state machine on
// behalf of an admin or a driver.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	change     shipment.StatusChange

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand validates the request. The source defaults to
// the caller's role and performedBy to the caller's id.
func NewUpdateShipmentStatusCommand(
	principal kernel.Principal,
	shipmentID kernel.UUID,
	req StatusUpdateRequest,
) (UpdateShipmentStatusCommand, error) {
	if !principal.HasRole(kernel.RoleAdmin, kernel.RoleDriver) {
		return UpdateShipmentStatusCommand{}, ErrForbidden
	}

	cmd := UpdateShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setChange(principal, req),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c UpdateShipmentStatusCommand) Change() shipment.StatusChange {
	return c.change
}

func (c *UpdateShipmentStatusCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	c.shipmentID = id
	return nil
}

func (c *UpdateShipmentStatusCommand) setChange(principal kernel.Principal, req StatusUpdateRequest) error {
	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	source := shipment.SourceForRole(principal.Role)
	if strings.TrimSpace(req.Source) != "" {
		if source, err = shipment.ParseSource(req.Source); err != nil {
			return err
		}
	}

	metadata, err := kernel.NewMetadata(req.Metadata)
	if err != nil {
		return err
	}

	performedBy := strings.TrimSpace(req.PerformedBy)
	if performedBy == "" {
		performedBy = principal.UserID.String()
	}

	c.change = shipment.StatusChange{
		Status:      status,
		Description: req.Description,
		Location:    req.Location,
		Notes:       req.Notes,
		Source:      source,
		PerformedBy: performedBy,
		Metadata:    metadata,
	}
	return nil
}
