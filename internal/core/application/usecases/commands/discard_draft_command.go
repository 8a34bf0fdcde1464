package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrDiscardDraftCommandIsNotConstructed = errors.New(
	"DiscardDraftCommand must be created via NewDiscardDraftCommand constructor",
)

// DiscardDraftCommand drops an unconfirmed draft of its owner.
type DiscardDraftCommand struct {
	orderAction
}

// NewDiscardDraftCommand creates the command.
func NewDiscardDraftCommand(actor kernel.Actor, orderID int64) (DiscardDraftCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return DiscardDraftCommand{}, err
	}
	return DiscardDraftCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c DiscardDraftCommand) Validate() error {
	return c.guard.Validate(ErrDiscardDraftCommandIsNotConstructed)
}
