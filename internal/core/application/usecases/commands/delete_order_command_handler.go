package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// DeleteOrderCommandHandler removes an order on the administrator's request.
// The order id is never handed out again.
//
// Example:
//
//	handler := NewDeleteOrderCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewDeleteOrderCommand(admin, 7)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectNotFound) {
//	    // already deleted by another tap
//	}
type DeleteOrderCommandHandler struct {
	transition
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
// The customer and the executor, if any, are told after commit.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, command DeleteOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.Delete(command.Actor())
	})
	return err
}
