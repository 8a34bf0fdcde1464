package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrDeclineAssignmentCommandIsNotConstructed = errors.New(
	"DeclineAssignmentCommand must be created via NewDeclineAssignmentCommand constructor",
)

// DeclineAssignmentCommand returns an assigned order to the pool on the linked executor's request.
type DeclineAssignmentCommand struct {
	orderAction
}

// NewDeclineAssignmentCommand creates the command.
func NewDeclineAssignmentCommand(actor kernel.Actor, orderID int64) (DeclineAssignmentCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return DeclineAssignmentCommand{}, err
	}
	return DeclineAssignmentCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeclineAssignmentCommandIsNotConstructed)
}
