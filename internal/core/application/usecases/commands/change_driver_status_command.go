package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
	"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
)

// ChangeDriverStatusCommand takes a driver on or off the assignment rota.
type ChangeDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   driver.Status

	guard guard.ConstructorGuard
}

func NewChangeDriverStatusCommand(driverID kernel.UUID, status string) (ChangeDriverStatusCommand, error) {
	st, err := driver.ParseStatus(status)
	if err = errors.Join(driverID.Validate(), err); err != nil {
		return ChangeDriverStatusCommand{}, err
	}

	return ChangeDriverStatusCommand{
		driverID: driverID,
		status:   st,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

func (c ChangeDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c ChangeDriverStatusCommand) Status() driver.Status {
	return c.status
}
