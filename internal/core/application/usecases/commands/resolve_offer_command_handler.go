package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ResolveOfferCommandHandler approves or rejects the price an executor
// offered. Approval fixes the final price and asks the customer to pay.
//
// Example:
//
//	handler := NewResolveOfferCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewResolveOfferCommand(admin, orderID, true)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	// order is awaiting_payment, the customer opens a session with "Оплатить"
type ResolveOfferCommandHandler struct {
	transition
}

// NewResolveOfferCommandHandler creates a handler for offer decisions.
func NewResolveOfferCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ResolveOfferCommandHandler {
	return ResolveOfferCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle applies ApproveOffer or RejectOffer depending on the decision.
func (h ResolveOfferCommandHandler) Handle(ctx context.Context, command ResolveOfferCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		if command.Approve() {
			return o.ApproveOffer(command.Actor())
		}
		return o.RejectOffer(command.Actor())
	})
	return err
}
