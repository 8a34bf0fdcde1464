package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ResolveCancellationCommandHandler is the administrator's answer to a
// pending cancellation.
//
// Behavior:
//   - accepting removes the order and notifies the customer and the executor
//   - declining restores the status the order had before the request
type ResolveCancellationCommandHandler struct {
	transition
}

// NewResolveCancellationCommandHandler creates a handler for cancellation decisions.
func NewResolveCancellationCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ResolveCancellationCommandHandler {
	return ResolveCancellationCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle applies AcceptCancellation or DeclineCancellation depending on the decision.
func (h ResolveCancellationCommandHandler) Handle(ctx context.Context, command ResolveCancellationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		if command.Accept() {
			return o.AcceptCancellation(command.Actor())
		}
		return o.DeclineCancellation(command.Actor())
	})
	return err
}
