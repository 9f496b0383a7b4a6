package commands

import (
	"context"
)

type UpdateRouteTemplateCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewUpdateRouteTemplateCommandHandler(uowFactory RouteUoWFactory) UpdateRouteTemplateCommandHandler {
	return UpdateRouteTemplateCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateRouteTemplateCommandHandler) Handle(ctx context.Context, cmd UpdateRouteTemplateCommand) error {
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

	repo := uow.RouteRepository()
	tpl, err := repo.Get(ctx, cmd.TemplateID())
	if err != nil {
		return err
	}

	if err = tpl.Redefine(cmd.Definition()); err != nil {
		return err
	}

	if err = repo.Update(ctx, tpl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
