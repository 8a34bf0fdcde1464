package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// SubmitPaymentCommandHandler attaches a payment proof to an open session
// and asks the administrator to review it.
type SubmitPaymentCommandHandler struct {
	transition
}

func NewSubmitPaymentCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) SubmitPaymentCommandHandler {
	return SubmitPaymentCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h SubmitPaymentCommandHandler) Handle(ctx context.Context, command SubmitPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.SubmitPayment(command.Actor(), command.File(), command.At())
	})
	return err
}
