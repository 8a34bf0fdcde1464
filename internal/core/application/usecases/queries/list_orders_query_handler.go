package queries

import (
	"context"
	"fmt"
	"slices"

	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns the orders by ascending id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsAdmin() {
		return nil, fmt.Errorf("%w: %s is not an administrator", order.ErrNotAuthorized, query.Actor().ID)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	if statuses := query.Statuses(); len(statuses) > 0 {
		orders = slices.DeleteFunc(orders, func(o *order.Order) bool {
			return !slices.Contains(statuses, o.Status())
		})
	}

	return newOrderViews(orders), nil
}
