package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
)

type CreateRouteTemplateCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewCreateRouteTemplateCommandHandler(uowFactory RouteUoWFactory) CreateRouteTemplateCommandHandler {
	return CreateRouteTemplateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the template and returns its id.
func (h *CreateRouteTemplateCommandHandler) Handle(ctx context.Context, cmd CreateRouteTemplateCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	tpl, err := route.NewTemplate(cmd.TemplateID(), cmd.Definition(), time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RouteRepository().Add(ctx, tpl); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return tpl.ID(), nil
}
