package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateRouteTemplateCommandIsNotConstructed = errors.New(
	"UpdateRouteTemplateCommand must be created via NewUpdateRouteTemplateCommand constructor",
)

// UpdateRouteTemplateCommand replaces every editable field of a template.
type UpdateRouteTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	definition route.Definition

	guard guard.ConstructorGuard
}

func NewUpdateRouteTemplateCommand(templateID kernel.UUID, payload RouteTemplatePayload) (UpdateRouteTemplateCommand, error) {
	def, err := payload.definition()
	if err = errors.Join(templateID.Validate(), err); err != nil {
		return UpdateRouteTemplateCommand{}, err
	}

	return UpdateRouteTemplateCommand{
		templateID: templateID,
		definition: def,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRouteTemplateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRouteTemplateCommandIsNotConstructed)
}

func (c UpdateRouteTemplateCommand) TemplateID() kernel.UUID {
	return c.templateID
}

func (c UpdateRouteTemplateCommand) Definition() route.Definition {
	return c.definition
}
