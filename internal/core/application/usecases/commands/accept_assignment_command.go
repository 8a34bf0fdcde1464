package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand is the linked executor agreeing to prepare an offer.
type AcceptAssignmentCommand struct {
	orderAction
}

// NewAcceptAssignmentCommand creates the command. Whether actor is the
// linked executor is checked by the handler, not here.
func NewAcceptAssignmentCommand(actor kernel.Actor, orderID int64) (AcceptAssignmentCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}
