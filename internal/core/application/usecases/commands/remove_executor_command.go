package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/guard"
)

var ErrRemoveExecutorCommandIsNotConstructed = errors.New(
	"RemoveExecutorCommand must be created via NewRemoveExecutorCommand constructor",
)

// RemoveExecutorCommand deletes a registry entry. Orders already linked to the
// executor keep the link.
type RemoveExecutorCommand struct {
	actor      kernel.Actor
	executorID kernel.ActorID
	guard      guard.ConstructorGuard
}

// NewRemoveExecutorCommand creates the command.
func NewRemoveExecutorCommand(actor kernel.Actor, executorID kernel.ActorID) (RemoveExecutorCommand, error) {
	if err := errors.Join(actor.ID.Validate(), executorID.Validate()); err != nil {
		return RemoveExecutorCommand{}, err
	}

	return RemoveExecutorCommand{
		actor:      actor,
		executorID: executorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveExecutorCommand) Validate() error {
	return c.guard.Validate(ErrRemoveExecutorCommandIsNotConstructed)
}

func (c RemoveExecutorCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RemoveExecutorCommand) ExecutorID() kernel.ActorID {
	return c.executorID
}
