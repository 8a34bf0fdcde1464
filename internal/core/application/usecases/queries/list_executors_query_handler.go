package queries

import (
	"context"

	"studydesk/internal/core/ports"
)

type ListExecutorsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListExecutorsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListExecutorsQueryHandler {
	return ListExecutorsQueryHandler{uowFactory: uowFactory}
}

// Handle returns the registry in insertion order.
func (h ListExecutorsQueryHandler) Handle(ctx context.Context, query ListExecutorsQuery) ([]ExecutorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registry, err := uow.ExecutorRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ExecutorView, 0, len(registry))
	for _, e := range registry {
		views = append(views, ExecutorView{
			ID:    e.ID(),
			Name:  e.DisplayName(),
			Label: e.Label(),
		})
	}
	return views, nil
}
