package commands_test

import (
	"context"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customer kernel.ActorID) ([]*order.Order, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) PurgeDrafts(ctx context.Context, customer kernel.ActorID, keep int64) error {
	args := m.Called(ctx, customer, keep)
	return args.Error(0)
}

type MockExecutorRepository struct{ mock.Mock }

func (m *MockExecutorRepository) Add(ctx context.Context, e *executor.Executor) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExecutorRepository) Delete(ctx context.Context, id kernel.ActorID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExecutorRepository) List(ctx context.Context) ([]*executor.Executor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*executor.Executor), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ExecutorRepository() ports.ExecutorRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutorRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, o *order.Order, notices []order.Notice) {
	m.Called(ctx, o, notices)
}

type MockPaymentLinker struct{ mock.Mock }

func (m *MockPaymentLinker) Link(ctx context.Context, orderID int64, price int) (string, error) {
	args := m.Called(ctx, orderID, price)
	return args.String(0), args.Error(1)
}

type MockSheetExporter struct{ mock.Mock }

func (m *MockSheetExporter) Append(ctx context.Context, row []string) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// fixture wires a factory that hands out one unit of work.
type fixture struct {
	orders    *MockOrderRepository
	executors *MockExecutorRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	publisher *MockPublisher
}

func newFixture() fixture {
	f := fixture{
		orders:    new(MockOrderRepository),
		executors: new(MockExecutorRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		publisher: new(MockPublisher),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f fixture) assert(t mock.TestingT) {
	f.orders.AssertExpectations(t)
	f.executors.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}
