package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrReviewPaymentCommandIsNotConstructed = errors.New(
	"ReviewPaymentCommand must be created via NewReviewPaymentCommand constructor",
)

// ReviewPaymentCommand is the administrator's verdict on a payment proof.
type ReviewPaymentCommand struct {
	orderAction
	accept bool
}

// NewReviewPaymentCommand creates the command. Rejecting drops the proof and
// the customer is asked to pay again.
func NewReviewPaymentCommand(actor kernel.Actor, orderID int64, accept bool) (ReviewPaymentCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ReviewPaymentCommand{}, err
	}
	return ReviewPaymentCommand{orderAction: action, accept: accept}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPaymentCommand) Validate() error {
	return c.guard.Validate(ErrReviewPaymentCommandIsNotConstructed)
}

func (c ReviewPaymentCommand) Accept() bool {
	return c.accept
}
