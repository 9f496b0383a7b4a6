package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrProcessOutboxCommandIsNotConstructed = errors.New(
	"ProcessOutboxCommand must be created via NewProcessOutboxCommand constructor",
)

// ProcessOutboxCommand triggers one relay pass over the outbox.
// This is a parameterless command run by the outbox relay job.
type ProcessOutboxCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessOutboxCommand() ProcessOutboxCommand {
	return ProcessOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ProcessOutboxCommand) Validate() error {
	return c.guard.Validate(ErrProcessOutboxCommandIsNotConstructed)
}
