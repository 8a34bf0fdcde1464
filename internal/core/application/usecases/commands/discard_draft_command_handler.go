package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// DiscardDraftCommandHandler drops a draft the customer no longer wants.
type DiscardDraftCommandHandler struct {
	transition
}

func NewDiscardDraftCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) DiscardDraftCommandHandler {
	return DiscardDraftCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h DiscardDraftCommandHandler) Handle(ctx context.Context, command DiscardDraftCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		return o.DiscardDraft(command.Actor())
	})
	return err
}
