package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// AssignExecutorCommandHandler assigns the executor and notifies them with
// the order materials.
type AssignExecutorCommandHandler struct {
	transition
}

// NewAssignExecutorCommandHandler creates the handler. Requires a UoWFactory
// for the transaction and a NoticePublisher for the executor notification.
func NewAssignExecutorCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) AssignExecutorCommandHandler {
	return AssignExecutorCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h AssignExecutorCommandHandler) Handle(ctx context.Context, command AssignExecutorCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.AssignExecutor(command.Actor(), command.ExecutorID())
	})
	return err
}
