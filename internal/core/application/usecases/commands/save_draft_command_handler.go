package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
)

// SaveDraftCommandHandler creates or supersedes a draft. Drafts produce no notices.
type SaveDraftCommandHandler struct {
	uowFactory UoWFactory
}

func NewSaveDraftCommandHandler(uowFactory UoWFactory) SaveDraftCommandHandler {
	return SaveDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the saved draft.
func (h SaveDraftCommandHandler) Handle(ctx context.Context, command SaveDraftCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	var (
		draft *order.Order
		err   error
	)
	if command.OrderID() == 0 {
		draft, err = h.create(ctx, repo, command)
	} else {
		draft, err = h.supersede(ctx, repo, command)
	}
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return draft.ID(), nil
}

func (h SaveDraftCommandHandler) create(ctx context.Context, repo ports.OrderRepository, command SaveDraftCommand) (*order.Order, error) {
	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := order.NewDraft(id, command.Actor(), command.At())
	if err != nil {
		return nil, err
	}

	if err = draft.EditDraft(command.Actor(), command.Details()); err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (h SaveDraftCommandHandler) supersede(ctx context.Context, repo ports.OrderRepository, command SaveDraftCommand) (*order.Order, error) {
	draft, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = draft.EditDraft(command.Actor(), command.Details()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}
