package commands

import (
	"context"
)

// AddExecutorCommandHandler registers a new executor on the administrator's
// request.
type AddExecutorCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddExecutorCommandHandler creates a handler for executor registration.
func NewAddExecutorCommandHandler(uowFactory UoWFactory) AddExecutorCommandHandler {
	return AddExecutorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle adds the executor to the registry. A duplicate id is a validation error.
func (h AddExecutorCommandHandler) Handle(ctx context.Context, command AddExecutorCommand) error {
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

	if err := uow.ExecutorRepository().Add(ctx, command.Executor()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
