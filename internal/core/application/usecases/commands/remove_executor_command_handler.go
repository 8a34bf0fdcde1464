package commands

import (
	"context"
)

// RemoveExecutorCommandHandler takes an executor off the registry. Orders
// already assigned to them keep their executor id.
type RemoveExecutorCommandHandler struct {
	uowFactory UoWFactory
}

func NewRemoveExecutorCommandHandler(uowFactory UoWFactory) RemoveExecutorCommandHandler {
	return RemoveExecutorCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveExecutorCommandHandler) Handle(ctx context.Context, command RemoveExecutorCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if err := requireAdmin(command.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ExecutorRepository().Delete(ctx, command.ExecutorID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
