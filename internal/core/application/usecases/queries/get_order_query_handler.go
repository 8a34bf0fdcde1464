package queries

import (
	"context"
	"fmt"
	"strconv"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if err = canView(query.Actor(), o); err != nil {
		return OrderView{}, err
	}

	return newOrderView(o), nil
}

func canView(actor kernel.Actor, o *order.Order) error {
	isOwner := o.Customer().ID == actor.ID

	if o.Status().IsDraft() {
		if isOwner {
			return nil
		}
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(o.ID(), 10))
	}

	if isOwner || actor.IsAdmin() || (o.HasExecutor() && o.ExecutorID() == actor.ID) {
		return nil
	}
	return fmt.Errorf("%w: order %d is not visible to %s", order.ErrNotAuthorized, o.ID(), actor.ID)
}
