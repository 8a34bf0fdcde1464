package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand promotes the customer's draft to the pool.
type ConfirmOrderCommand struct {
	orderAction
}

// NewConfirmOrderCommand creates the command. Missing required fields are
// reported by the handler once the draft is loaded.
//
// Example:
//
//	cmd, err := NewConfirmOrderCommand(customer, draftID)
//	if err != nil {
//	    return err
//	}
func NewConfirmOrderCommand(actor kernel.Actor, orderID int64) (ConfirmOrderCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}
