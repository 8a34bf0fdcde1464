package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrResolveOfferCommandIsNotConstructed = errors.New(
	"ResolveOfferCommand must be created via NewResolveOfferCommand constructor",
)

// ResolveOfferCommand is the administrator's verdict on a submitted offer.
// Approval fixes the final price; rejection drops the offer and the executor.
type ResolveOfferCommand struct {
	orderAction
	approve bool
}

// NewResolveOfferCommand creates the command; approve selects the branch.
func NewResolveOfferCommand(actor kernel.Actor, orderID int64, approve bool) (ResolveOfferCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ResolveOfferCommand{}, err
	}
	return ResolveOfferCommand{orderAction: action, approve: approve}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveOfferCommand) Validate() error {
	return c.guard.Validate(ErrResolveOfferCommandIsNotConstructed)
}

func (c ResolveOfferCommand) Approve() bool {
	return c.approve
}
