package commands

import (
	"errors"
	"time"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrStartPaymentCommandIsNotConstructed = errors.New(
	"StartPaymentCommand must be created via NewStartPaymentCommand constructor",
)

// StartPaymentCommand opens a time-boxed payment session for the owner of an
// order awaiting payment.
type StartPaymentCommand struct {
	orderAction
	at time.Time
}

// NewStartPaymentCommand creates the command. The session expiry is
// counted from at.
func NewStartPaymentCommand(actor kernel.Actor, orderID int64, at time.Time) (StartPaymentCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return StartPaymentCommand{}, err
	}
	return StartPaymentCommand{orderAction: action, at: at}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPaymentCommand) Validate() error {
	return c.guard.Validate(ErrStartPaymentCommandIsNotConstructed)
}

func (c StartPaymentCommand) At() time.Time {
	return c.at
}
