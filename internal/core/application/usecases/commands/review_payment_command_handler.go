package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ReviewPaymentCommandHandler accepts or rejects an uploaded payment proof.
type ReviewPaymentCommandHandler struct {
	transition
}

func NewReviewPaymentCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ReviewPaymentCommandHandler {
	return ReviewPaymentCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle applies AcceptPayment or RejectPayment depending on the decision.
func (h ReviewPaymentCommandHandler) Handle(ctx context.Context, command ReviewPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		if command.Accept() {
			return o.AcceptPayment(command.Actor())
		}
		return o.RejectPayment(command.Actor())
	})
	return err
}
