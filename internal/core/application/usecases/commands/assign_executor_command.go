package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrAssignExecutorCommandIsNotConstructed = errors.New(
	"AssignExecutorCommand must be created via NewAssignExecutorCommand constructor",
)

// AssignExecutorCommand links an executor to an order waiting in the pool.
// The executor id comes from the registry or is typed by the administrator.
//
// Example:
//
//	cmd, err := NewAssignExecutorCommand(admin, 12, 123456789)
//	if err != nil {
//	    return err // re-prompt for the id
//	}
//	err = handler.Handle(ctx, cmd)
type AssignExecutorCommand struct {
	orderAction
	executorID kernel.ActorID
}

// NewAssignExecutorCommand rejects a zero executor id.
func NewAssignExecutorCommand(actor kernel.Actor, orderID int64, executorID kernel.ActorID) (AssignExecutorCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err = errors.Join(err, executorID.Validate()); err != nil {
		return AssignExecutorCommand{}, err
	}
	return AssignExecutorCommand{orderAction: action, executorID: executorID}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignExecutorCommand) Validate() error {
	return c.guard.Validate(ErrAssignExecutorCommandIsNotConstructed)
}

func (c AssignExecutorCommand) ExecutorID() kernel.ActorID {
	return c.executorID
}
