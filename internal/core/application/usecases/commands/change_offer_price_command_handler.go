package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ChangeOfferPriceCommandHandler lets the administrator correct the price
// of a pending executor offer before approving it.
type ChangeOfferPriceCommandHandler struct {
	transition
}

func NewChangeOfferPriceCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ChangeOfferPriceCommandHandler {
	return ChangeOfferPriceCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle returns the updated order so the caller can redraw the approval card.
func (h ChangeOfferPriceCommandHandler) Handle(ctx context.Context, command ChangeOfferPriceCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.ChangeOfferPrice(command.Actor(), command.Price())
	})
}
