package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/guard"
)

var ErrAddExecutorCommandIsNotConstructed = errors.New(
	"AddExecutorCommand must be created via NewAddExecutorCommand constructor",
)

// AddExecutorCommand registers an executor. The name may be skipped.
type AddExecutorCommand struct {
	actor    kernel.Actor
	executor *executor.Executor
	guard    guard.ConstructorGuard
}

// NewAddExecutorCommand validates both ids through executor.NewExecutor.
//
// Example:
//
//	cmd, err := NewAddExecutorCommand(admin, kernel.ActorID(200), "Анна")
//	if err != nil {
//	    return err // the executor id is zero
//	}
func NewAddExecutorCommand(actor kernel.Actor, executorID kernel.ActorID, name string) (AddExecutorCommand, error) {
	e, err := executor.NewExecutor(executorID, name)
	if err = errors.Join(actor.ID.Validate(), err); err != nil {
		return AddExecutorCommand{}, err
	}

	return AddExecutorCommand{
		actor:    actor,
		executor: e,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddExecutorCommand) Validate() error {
	return c.guard.Validate(ErrAddExecutorCommandIsNotConstructed)
}

func (c AddExecutorCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddExecutorCommand) Executor() *executor.Executor {
	return c.executor
}
