package queries

import (
	"context"

	"studydesk/internal/core/ports"
)

type ListCustomerOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListCustomerOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns the customer's confirmed orders; drafts are left out.
func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]OrderView, error) {
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

	orders, err := uow.OrderRepository().ListByCustomer(ctx, query.Customer())
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
