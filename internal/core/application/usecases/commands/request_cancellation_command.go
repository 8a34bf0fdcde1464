package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand is a customer withdrawing an order with a structured reason.
type RequestCancellationCommand struct {
	orderAction
	reason order.Cancellation
}

// NewRequestCancellationCommand requires a comment when the reason is order.OtherOption.
func NewRequestCancellationCommand(actor kernel.Actor, orderID int64, reason, comment string) (RequestCancellationCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return RequestCancellationCommand{}, err
	}

	cancellation, err := order.NewCancellation(reason, comment)
	if err != nil {
		return RequestCancellationCommand{}, err
	}

	return RequestCancellationCommand{orderAction: action, reason: cancellation}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

func (c RequestCancellationCommand) Reason() order.Cancellation {
	return c.reason
}
