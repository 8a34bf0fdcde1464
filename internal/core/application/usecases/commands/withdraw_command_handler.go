package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// WithdrawCommandHandler unlinks an executor who gives up an order they
// accepted. The order returns to the pool and the reason reaches the
// administrator.
//
// Example:
//
//	handler := NewWithdrawCommandHandler(uowFactory, dispatcher)
//	cmd, err := NewWithdrawCommand(executor, orderID, order.OtherOption, "заболел")
//	if err != nil {
//	    return err // "Другое" without a comment is rejected here
//	}
//	_ = handler.Handle(ctx, cmd)
type WithdrawCommandHandler struct {
	transition
}

func NewWithdrawCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) WithdrawCommandHandler {
	return WithdrawCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h WithdrawCommandHandler) Handle(ctx context.Context, command WithdrawCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.Withdraw(command.Actor(), command.Reason())
	})
	return err
}
