package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// SelfTakeCommandHandler lets the administrator do an order themselves. The
// terms are recorded as an approved offer and the order goes straight to
// awaiting_payment.
//
// Example:
//
//	handler := NewSelfTakeCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewSelfTakeCommand(admin, orderID, 2500, "до пятницы", "")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("self take: %w", err)
//	}
type SelfTakeCommandHandler struct {
	transition
}

// NewSelfTakeCommandHandler creates a handler for orders taken by the administrator.
func NewSelfTakeCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) SelfTakeCommandHandler {
	return SelfTakeCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h SelfTakeCommandHandler) Handle(ctx context.Context, command SelfTakeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.TakeByAdmin(command.Actor(), command.Terms())
	})
	return err
}
