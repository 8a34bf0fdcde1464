package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrResolveCancellationCommandIsNotConstructed = errors.New(
	"ResolveCancellationCommand must be created via NewResolveCancellationCommand constructor",
)

// ResolveCancellationCommand answers a customer's cancellation request.
// Accepting removes the order; declining restores the status it had before.
type ResolveCancellationCommand struct {
	orderAction
	accept bool
}

// NewResolveCancellationCommand creates the command; accept selects the branch.
func NewResolveCancellationCommand(actor kernel.Actor, orderID int64, accept bool) (ResolveCancellationCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ResolveCancellationCommand{}, err
	}
	return ResolveCancellationCommand{orderAction: action, accept: accept}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveCancellationCommand) Validate() error {
	return c.guard.Validate(ErrResolveCancellationCommandIsNotConstructed)
}

func (c ResolveCancellationCommand) Accept() bool {
	return c.accept
}
