package commands

import (
	"context"
)

type DeleteRouteTemplateCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewDeleteRouteTemplateCommandHandler(uowFactory RouteUoWFactory) DeleteRouteTemplateCommandHandler {
	return DeleteRouteTemplateCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DeleteRouteTemplateCommandHandler) Handle(ctx context.Context, cmd DeleteRouteTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RouteRepository().Delete(ctx, cmd.TemplateID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
