package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// RequestCancellationCommandHandler removes an order still in the pool at
// once; later cancellations wait in cancel_pending for the administrator.
type RequestCancellationCommandHandler struct {
	transition
}

// NewRequestCancellationCommandHandler creates a handler for customer
// cancellations.
//
// Example:
//
//	handler := NewRequestCancellationCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewRequestCancellationCommand(customer, 3, "Слишком дорого", "")
//	removed, err := handler.Handle(ctx, cmd)
//	if err == nil && !removed {
//	    // waiting for the administrator in cancel_pending
//	}
func NewRequestCancellationCommandHandler(
	uowFactory UoWFactory,
	publisher NoticePublisher,
) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle reports whether the order was removed immediately.
func (h RequestCancellationCommandHandler) Handle(ctx context.Context, command RequestCancellationCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	o, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.RequestCancellation(command.Actor(), command.Reason())
	})
	if err != nil {
		return false, err
	}
	return o.IsRemoved(), nil
}
