package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ApproveWorkCommandHandler forwards the executor's uploaded work to the
// customer after the administrator checked it.
//
// Example:
//
//	handler := NewApproveWorkCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewApproveWorkCommand(admin, orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("approve work: %w", err)
//	}
//	// the customer now sees the files with accept and revision buttons
type ApproveWorkCommandHandler struct {
	transition
}

// NewApproveWorkCommandHandler creates a handler for work approval.
func NewApproveWorkCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ApproveWorkCommandHandler {
	return ApproveWorkCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h ApproveWorkCommandHandler) Handle(ctx context.Context, command ApproveWorkCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.ApproveWork(command.Actor())
	})
	return err
}
