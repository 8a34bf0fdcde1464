package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// SubmitWorkCommandHandler stores the file the executor delivered. The
// administrator sees it before the customer does.
type SubmitWorkCommandHandler struct {
	transition
}

// NewSubmitWorkCommandHandler creates a handler for delivered work.
func NewSubmitWorkCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) SubmitWorkCommandHandler {
	return SubmitWorkCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h SubmitWorkCommandHandler) Handle(ctx context.Context, command SubmitWorkCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.SubmitWork(command.Actor(), command.File(), command.At())
	})
	return err
}
