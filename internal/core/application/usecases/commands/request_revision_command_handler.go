package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// RequestRevisionCommandHandler sends delivered work back to the executor
// with the customer's comment. The comment is required.
type RequestRevisionCommandHandler struct {
	transition
}

func NewRequestRevisionCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h RequestRevisionCommandHandler) Handle(ctx context.Context, command RequestRevisionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.RequestRevision(command.Actor(), command.Comment())
	})
	return err
}
