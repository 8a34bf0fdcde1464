package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

var ErrWithdrawCommandIsNotConstructed = errors.New(
	"WithdrawCommand must be created via NewWithdrawCommand constructor",
)

// WithdrawCommand is the linked executor dropping paid work with a structured reason.
type WithdrawCommand struct {
	orderAction
	reason order.Cancellation
}

// NewWithdrawCommand requires a comment when the reason is order.OtherOption.
func NewWithdrawCommand(actor kernel.Actor, orderID int64, reason, comment string) (WithdrawCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return WithdrawCommand{}, err
	}

	cancellation, err := order.NewCancellation(reason, comment)
	if err != nil {
		return WithdrawCommand{}, err
	}

	return WithdrawCommand{orderAction: action, reason: cancellation}, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawCommandIsNotConstructed)
}

func (c WithdrawCommand) Reason() order.Cancellation {
	return c.reason
}
