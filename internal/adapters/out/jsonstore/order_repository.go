package jsonstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
)

// OrderRepository reads and writes the orders loaded by its unit of work.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if r.index(aggregate.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("order %d already exists", aggregate.ID()))
	}

	r.uow.orders = append(r.uow.orders, fromOrder(aggregate))
	r.uow.ordersDirty = true
	if aggregate.ID() > r.uow.lastOrderID {
		r.uow.lastOrderID = aggregate.ID()
		r.uow.sequenceDirty = true
	}
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.ensureActive(); err != nil {
		return err
	}

	i := r.index(aggregate.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if stored := r.uow.orders[i].Version; stored != aggregate.Version() {
		return errs.NewVersionIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %d is at version %d, update is based on %d", aggregate.ID(), stored, aggregate.Version()),
		)
	}

	record := fromOrder(aggregate)
	record.Version++
	r.uow.orders[i] = record
	r.uow.ordersDirty = true
	aggregate.IncrementVersion()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id int64) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}

	i := r.index(id)
	if i < 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	r.uow.orders = slices.Delete(r.uow.orders, i, i+1)
	r.uow.ordersDirty = true
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}

	i := r.index(id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return r.uow.orders[i].toOrder()
}

func (r *OrderRepository) List(_ context.Context) ([]*order.Order, error) {
	return r.find(func(rec OrderRecord) bool {
		return rec.Status != order.Editing.String()
	})
}

func (r *OrderRepository) ListByCustomer(_ context.Context, customer kernel.ActorID) ([]*order.Order, error) {
	return r.find(func(rec OrderRecord) bool {
		return rec.UserID == customer.Int64() && rec.Status != order.Editing.String()
	})
}

func (r *OrderRepository) ListByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(func(rec OrderRecord) bool {
		return rec.Status == status.String()
	})
}

// NextID returns one past the highest id stored now or ever issued before.
func (r *OrderRepository) NextID(_ context.Context) (int64, error) {
	if err := r.uow.ensureActive(); err != nil {
		return 0, err
	}
	return max(NextID(r.uow.orders), r.uow.lastOrderID+1), nil
}

func (r *OrderRepository) PurgeDrafts(_ context.Context, customer kernel.ActorID, keep int64) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}

	before := len(r.uow.orders)
	r.uow.orders = slices.DeleteFunc(r.uow.orders, func(rec OrderRecord) bool {
		return rec.UserID == customer.Int64() &&
			rec.OrderID != keep &&
			rec.Status == order.Editing.String()
	})
	if len(r.uow.orders) != before {
		r.uow.ordersDirty = true
	}
	return nil
}

func (r *OrderRepository) index(id int64) int {
	return slices.IndexFunc(r.uow.orders, func(rec OrderRecord) bool {
		return rec.OrderID == id
	})
}

func (r *OrderRepository) find(match func(OrderRecord) bool) ([]*order.Order, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}

	var orders []*order.Order
	for _, rec := range r.uow.orders {
		if !match(rec) {
			continue
		}
		o, err := rec.toOrder()
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", rec.OrderID, err)
		}
		orders = append(orders, o)
	}

	slices.SortFunc(orders, func(a, b *order.Order) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return orders, nil
}
