package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteRouteTemplateCommandIsNotConstructed = errors.New(
	"DeleteRouteTemplateCommand must be created via NewDeleteRouteTemplateCommand constructor",
)

type DeleteRouteTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRouteTemplateCommand(templateID kernel.UUID) (DeleteRouteTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return DeleteRouteTemplateCommand{}, err
	}

	return DeleteRouteTemplateCommand{
		templateID: templateID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRouteTemplateCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRouteTemplateCommandIsNotConstructed)
}

func (c DeleteRouteTemplateCommand) TemplateID() kernel.UUID {
	return c.templateID
}
