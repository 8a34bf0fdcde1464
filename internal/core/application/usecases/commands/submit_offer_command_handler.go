package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// SubmitOfferCommandHandler stores the executor's price, deadline and
// comment and hands the offer to the administrator for approval.
//
// Behavior:
//   - only the executor who confirmed the assignment may submit
//   - a negative price or an empty deadline never reaches the handler
//   - the order waits in awaiting_admin_approval afterwards
type SubmitOfferCommandHandler struct {
	transition
}

// NewSubmitOfferCommandHandler creates a handler for executor offers.
func NewSubmitOfferCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h SubmitOfferCommandHandler) Handle(ctx context.Context, command SubmitOfferCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.SubmitOffer(command.Actor(), command.Terms())
	})
	return err
}
