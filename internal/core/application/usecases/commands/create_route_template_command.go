package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateRouteTemplateCommandIsNotConstructed = errors.New(
	"CreateRouteTemplateCommand must be created via NewCreateRouteTemplateCommand constructor",
)

// CreateRouteTemplateCommand adds a lane to the pricing catalog.
type CreateRouteTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	definition route.Definition

	guard guard.ConstructorGuard
}

func NewCreateRouteTemplateCommand(payload RouteTemplatePayload) (CreateRouteTemplateCommand, error) {
	def, err := payload.definition()
	if err != nil {
		return CreateRouteTemplateCommand{}, err
	}

	return CreateRouteTemplateCommand{
		templateID: kernel.NewUUID(),
		definition: def,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRouteTemplateCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteTemplateCommandIsNotConstructed)
}

func (c CreateRouteTemplateCommand) TemplateID() kernel.UUID {
	return c.templateID
}

func (c CreateRouteTemplateCommand) Definition() route.Definition {
	return c.definition
}
