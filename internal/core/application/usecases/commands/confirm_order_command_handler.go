package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler confirms a draft and purges the customer's
// other drafts in the same transaction, so confirming leaves exactly one
// order and no residual drafts.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewConfirmOrderCommand(customer, draftID)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errs.IsValidation(err):
//	    // some required field is missing, keep the customer in intake
//	case err != nil:
//	    return err
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  NoticePublisher
}

// NewConfirmOrderCommandHandler creates a handler for draft confirmation.
func NewConfirmOrderCommandHandler(uowFactory UoWFactory, publisher NoticePublisher) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, command ConfirmOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Confirm(command.Actor()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = repo.PurgeDrafts(ctx, o.Customer().ID, o.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, o, o.PullNotices())
	return o, nil
}
