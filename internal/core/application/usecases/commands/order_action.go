package commands

import (
	"context"
	"errors"
	"fmt"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
	"studydesk/internal/pkg/guard"
)

// orderAction is the common part of commands an actor fires on one order.
type orderAction struct {
	actor   kernel.Actor
	orderID int64
	guard   guard.ConstructorGuard
}

func newOrderAction(actor kernel.Actor, orderID int64) (orderAction, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsRequiredError("order id")
	}

	if err := errors.Join(actor.ID.Validate(), idErr); err != nil {
		return orderAction{}, err
	}

	return orderAction{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (a orderAction) Actor() kernel.Actor {
	return a.actor
}

func (a orderAction) OrderID() int64 {
	return a.orderID
}

// transition runs one domain operation on one order inside a unit of work.
// Removed orders are deleted instead of updated. Notices are published after
// commit.
type transition struct {
	uowFactory UoWFactory
	publisher  NoticePublisher
}

func (t transition) apply(ctx context.Context, orderID int64, op func(o *order.Order) error) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = op(o); err != nil {
		return nil, err
	}

	if o.IsRemoved() {
		err = repo.Delete(ctx, o.ID())
	} else {
		err = repo.Update(ctx, o)
	}
	if err != nil {
		return nil, fmt.Errorf("persist order %d: %w", o.ID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	t.publisher.Publish(ctx, o, o.PullNotices())
	return o, nil
}
