package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrApproveWorkCommandIsNotConstructed = errors.New(
	"ApproveWorkCommand must be created via NewApproveWorkCommand constructor",
)

// ApproveWorkCommand forwards delivered work to the customer after the administrator checked it.
type ApproveWorkCommand struct {
	orderAction
}

// NewApproveWorkCommand creates the command.
func NewApproveWorkCommand(actor kernel.Actor, orderID int64) (ApproveWorkCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ApproveWorkCommand{}, err
	}
	return ApproveWorkCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveWorkCommand) Validate() error {
	return c.guard.Validate(ErrApproveWorkCommandIsNotConstructed)
}
