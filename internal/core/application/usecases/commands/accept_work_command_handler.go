package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// AcceptWorkCommandHandler records that the customer accepted the delivered
// work. The order is completed and the executor and the administrator are told.
type AcceptWorkCommandHandler struct {
	transition
}

func NewAcceptWorkCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) AcceptWorkCommandHandler {
	return AcceptWorkCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h AcceptWorkCommandHandler) Handle(ctx context.Context, command AcceptWorkCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.AcceptWork(command.Actor())
	})
	return err
}
