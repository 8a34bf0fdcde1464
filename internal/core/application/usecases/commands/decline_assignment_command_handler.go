package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// DeclineAssignmentCommandHandler returns an order to the pool when the
// assigned executor refuses it.
//
// Behavior:
//   - the executor is unlinked and the status goes back to under_review
//   - the administrator is notified so they can pick someone else
//   - any other actor gets order.ErrNotAuthorized
type DeclineAssignmentCommandHandler struct {
	transition
}

// NewDeclineAssignmentCommandHandler creates a handler for declined assignments.
func NewDeclineAssignmentCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) DeclineAssignmentCommandHandler {
	return DeclineAssignmentCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h DeclineAssignmentCommandHandler) Handle(ctx context.Context, command DeclineAssignmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.DeclineAssignment(command.Actor())
	})
	return err
}
