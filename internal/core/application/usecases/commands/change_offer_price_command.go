package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

var ErrChangeOfferPriceCommandIsNotConstructed = errors.New(
	"ChangeOfferPriceCommand must be created via NewChangeOfferPriceCommand constructor",
)

// ChangeOfferPriceCommand overrides the price of a submitted offer. The order
// stays in awaiting_admin_approval.
type ChangeOfferPriceCommand struct {
	orderAction
	price int
}

// NewChangeOfferPriceCommand rejects negative prices. Zero is allowed for
// work done free of charge.
func NewChangeOfferPriceCommand(actor kernel.Actor, orderID int64, price int) (ChangeOfferPriceCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ChangeOfferPriceCommand{}, err
	}
	if price < 0 {
		return ChangeOfferPriceCommand{}, errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	return ChangeOfferPriceCommand{orderAction: action, price: price}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOfferPriceCommand) Validate() error {
	return c.guard.Validate(ErrChangeOfferPriceCommandIsNotConstructed)
}

func (c ChangeOfferPriceCommand) Price() int {
	return c.price
}
