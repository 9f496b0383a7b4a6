package commands

import (
	"context"
)

type ChangeDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewChangeDriverStatusCommandHandler(uowFactory DriverUoWFactory) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChangeDriverStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDriverStatusCommand) error {
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

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = d.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
