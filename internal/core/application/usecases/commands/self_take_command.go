package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

var ErrSelfTakeCommandIsNotConstructed = errors.New(
	"SelfTakeCommand must be created via NewSelfTakeCommand constructor",
)

// SelfTakeCommand lets the administrator do the work personally on the given terms.
// The customer is asked to pay straight away.
type SelfTakeCommand struct {
	orderAction
	terms order.Terms
}

// NewSelfTakeCommand validates the price and deadline through order.NewTerms.
func NewSelfTakeCommand(actor kernel.Actor, orderID int64, price int, deadline, comment string) (SelfTakeCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return SelfTakeCommand{}, err
	}

	terms, err := order.NewTerms(price, deadline, comment)
	if err != nil {
		return SelfTakeCommand{}, err
	}

	return SelfTakeCommand{orderAction: action, terms: terms}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelfTakeCommand) Validate() error {
	return c.guard.Validate(ErrSelfTakeCommandIsNotConstructed)
}

func (c SelfTakeCommand) Terms() order.Terms {
	return c.terms
}
