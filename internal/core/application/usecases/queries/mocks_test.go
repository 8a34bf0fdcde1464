package queries_test

import (
	"context"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// readUoW answers reads from fixed slices. Writes are not expected.
type readUoW struct {
	mock.Mock
	orders    []*order.Order
	executors []*executor.Executor
}

func (u *readUoW) Begin(ctx context.Context) error {
	return u.MethodCalled("Begin", ctx).Error(0)
}

func (u *readUoW) Commit(context.Context) error {
	panic("queries must not commit")
}

func (u *readUoW) Rollback(ctx context.Context) error {
	return u.MethodCalled("Rollback", ctx).Error(0)
}

func (u *readUoW) OrderRepository() ports.OrderRepository {
	return readOrders{u}
}

func (u *readUoW) ExecutorRepository() ports.ExecutorRepository {
	return readExecutors{u}
}

func (u *readUoW) Create() ports.UnitOfWork {
	return u
}

type readOrders struct{ *readUoW }

func (r readOrders) Add(context.Context, *order.Order) error    { panic("unexpected write") }
func (r readOrders) Update(context.Context, *order.Order) error { panic("unexpected write") }
func (r readOrders) Delete(context.Context, int64) error        { panic("unexpected write") }
func (r readOrders) NextID(context.Context) (int64, error)      { panic("unexpected write") }

func (r readOrders) PurgeDrafts(context.Context, kernel.ActorID, int64) error {
	panic("unexpected write")
}

func (r readOrders) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := r.MethodCalled("Get", ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (r readOrders) List(context.Context) ([]*order.Order, error) {
	confirmed := make([]*order.Order, 0)
	for _, o := range r.orders {
		if !o.Status().IsDraft() {
			confirmed = append(confirmed, o)
		}
	}
	return confirmed, nil
}

func (r readOrders) ListByCustomer(ctx context.Context, customer kernel.ActorID) ([]*order.Order, error) {
	all, _ := r.List(ctx)
	own := make([]*order.Order, 0)
	for _, o := range all {
		if o.Customer().ID == customer {
			own = append(own, o)
		}
	}
	return own, nil
}

func (r readOrders) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	all, _ := r.List(ctx)
	matched := make([]*order.Order, 0)
	for _, o := range all {
		if o.Status() == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

type readExecutors struct{ *readUoW }

func (r readExecutors) Add(context.Context, *executor.Executor) error { panic("unexpected write") }
func (r readExecutors) Delete(context.Context, kernel.ActorID) error  { panic("unexpected write") }

func (r readExecutors) List(context.Context) ([]*executor.Executor, error) {
	return r.executors, nil
}
