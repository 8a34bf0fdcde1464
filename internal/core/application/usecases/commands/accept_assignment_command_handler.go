package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// AcceptAssignmentCommandHandler lets the assigned executor take the order.
// The order moves from executor_assigned to executor_confirmed and the
// executor may then submit an offer.
//
// Example:
//
//	handler := NewAcceptAssignmentCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewAcceptAssignmentCommand(executor, 12)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrNotAuthorized) {
//	    // someone other than the assigned executor pressed the button
//	}
type AcceptAssignmentCommandHandler struct {
	transition
}

// NewAcceptAssignmentCommandHandler creates the handler. Notices raised by
// the order are handed to publisher once the unit of work commits.
func NewAcceptAssignmentCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, command AcceptAssignmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.AcceptAssignment(command.Actor())
	})
	return err
}
