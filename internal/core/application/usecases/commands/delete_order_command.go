package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes any confirmed order on the administrator's request.
// The customer and the linked executor are told.
type DeleteOrderCommand struct {
	orderAction
}

// NewDeleteOrderCommand creates a command for the administrator.
func NewDeleteOrderCommand(actor kernel.Actor, orderID int64) (DeleteOrderCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
