package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// DriverPayload is the body of a driver registration request. Contact details
// used for assignment notices (name, email, phone) live in metadata.
type DriverPayload struct {
	DriverCode   string         `json:"driverCode"`
	UserID       string         `json:"userId,omitempty"`
	VehicleType  string         `json:"vehicleType"`
	Registration string         `json:"registration"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// CreateDriverCommand registers a fleet driver in active status.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	driverCode   string
	userID       *kernel.UUID
	vehicleType  driver.VehicleType
	registration string
	metadata     kernel.Metadata

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(payload DriverPayload) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		driverID:     kernel.NewUUID(),
		driverCode:   strings.TrimSpace(payload.DriverCode),
		registration: strings.TrimSpace(payload.Registration),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(payload.UserID),
		cmd.setVehicleType(payload.VehicleType),
		cmd.setMetadata(payload.Metadata),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID { return c.driverID }

func (c CreateDriverCommand) DriverCode() string { return c.driverCode }

func (c CreateDriverCommand) UserID() *kernel.UUID { return c.userID }

func (c CreateDriverCommand) VehicleType() driver.VehicleType { return c.vehicleType }

func (c CreateDriverCommand) Registration() string { return c.registration }

func (c CreateDriverCommand) Metadata() kernel.Metadata { return c.metadata }

func (c *CreateDriverCommand) setUserID(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	c.userID = &id
	return nil
}

func (c *CreateDriverCommand) setVehicleType(raw string) error {
	v, err := driver.ParseVehicleType(raw)
	if err != nil {
		return err
	}
	c.vehicleType = v
	return nil
}

func (c *CreateDriverCommand) setMetadata(raw map[string]any) error {
	m, err := kernel.NewMetadata(raw)
	if err != nil {
		return err
	}
	c.metadata = m
	return nil
}
