package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrAcceptWorkCommandIsNotConstructed = errors.New(
	"AcceptWorkCommand must be created via NewAcceptWorkCommand constructor",
)

// AcceptWorkCommand completes the order on behalf of its owner.
type AcceptWorkCommand struct {
	orderAction
}

// NewAcceptWorkCommand creates a command for the order's customer.
func NewAcceptWorkCommand(actor kernel.Actor, orderID int64) (AcceptWorkCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return AcceptWorkCommand{}, err
	}
	return AcceptWorkCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptWorkCommand) Validate() error {
	return c.guard.Validate(ErrAcceptWorkCommandIsNotConstructed)
}
