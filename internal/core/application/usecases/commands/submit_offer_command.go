package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New(
	"SubmitOfferCommand must be created via NewSubmitOfferCommand constructor",
)

// SubmitOfferCommand carries the linked executor's price, deadline and comment.
type SubmitOfferCommand struct {
	orderAction
	terms order.Terms
}

// NewSubmitOfferCommand validates the price and deadline through order.NewTerms.
func NewSubmitOfferCommand(actor kernel.Actor, orderID int64, price int, deadline, comment string) (SubmitOfferCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return SubmitOfferCommand{}, err
	}

	terms, err := order.NewTerms(price, deadline, comment)
	if err != nil {
		return SubmitOfferCommand{}, err
	}

	return SubmitOfferCommand{orderAction: action, terms: terms}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

func (c SubmitOfferCommand) Terms() order.Terms {
	return c.terms
}
