package queries

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
	"studydesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order on behalf of actor. Only the owner, the
// linked executor and the administrator may see it; drafts are visible to
// their owner only.
//
// Example:
//
//	query, err := NewGetOrderQuery(actor, 12)
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID int64
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, orderID int64) (GetOrderQuery, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsRequiredError("order id")
	}
	if err := errors.Join(actor.ID.Validate(), idErr); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}
