package commands_test

import (
	"errors"
	"testing"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/model/order/ordertest"
	"studydesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	exporter := new(MockSheetExporter)
	o := ordertest.At(t, 14, order.InProgress)
	cmd, err := commands.NewExportOrderCommand(ordertest.Admin, 14)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, int64(14)).Return(o, nil).Once(),
		exporter.On("Append", ctx, o.SheetRow()).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewExportOrderCommandHandler(f.factory, exporter)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assert(t)
	exporter.AssertExpectations(t)
}

func TestExportOrderCommandHandler_Handle_ExporterError(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	exporter := new(MockSheetExporter)
	o := ordertest.At(t, 14, order.Completed)
	cmd, err := commands.NewExportOrderCommand(ordertest.Admin, 14)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, int64(14)).Return(o, nil).Once(),
		exporter.On("Append", ctx, mock.Anything).Return(errors.New("disk full")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewExportOrderCommandHandler(f.factory, exporter)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "export order 14: disk full")
	assert.Equal(t, order.Completed, o.Status())
	f.assert(t)
}

func TestExportOrderCommandHandler_Handle_DraftIsHidden(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	exporter := new(MockSheetExporter)
	draft := ordertest.Draft(t, 14)
	cmd, err := commands.NewExportOrderCommand(ordertest.Admin, 14)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, int64(14)).Return(draft, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewExportOrderCommandHandler(f.factory, exporter)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	exporter.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.assert(t)
}

func TestExportOrderCommandHandler_Handle_NotAdmin(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	exporter := new(MockSheetExporter)
	cmd, err := commands.NewExportOrderCommand(ordertest.Executor, 14)
	require.NoError(t, err)

	handler := commands.NewExportOrderCommandHandler(factory, exporter)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestAddExecutorCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	cmd, err := commands.NewAddExecutorCommand(ordertest.Admin, 555, "  Мария Петрова ")
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("ExecutorRepository").Return(f.executors).Once(),
		f.executors.On("Add", ctx, mock.MatchedBy(func(e *executor.Executor) bool {
			return e.ID() == 555 && e.Name() == "Мария Петрова"
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAddExecutorCommandHandler(f.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assert(t)
}

func TestAddExecutorCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	cmd, err := commands.NewAddExecutorCommand(ordertest.Admin, 555, "")
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("ExecutorRepository").Return(f.executors).Once(),
		f.executors.On("Add", ctx, mock.Anything).Return(errs.NewValueIsInvalidError("executor 555")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAddExecutorCommandHandler(f.factory)
	err = handler.Handle(ctx, cmd)

	require.True(t, errs.IsValidation(err))
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assert(t)
}

func TestRemoveExecutorCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	cmd, err := commands.NewRemoveExecutorCommand(ordertest.Admin, 555)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("ExecutorRepository").Return(f.executors).Once(),
		f.executors.On("Delete", ctx, kernel.ActorID(555)).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRemoveExecutorCommandHandler(f.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assert(t)
}

func TestRemoveExecutorCommandHandler_Handle_NotAdmin(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	cmd, err := commands.NewRemoveExecutorCommand(ordertest.Customer, 555)
	require.NoError(t, err)

	handler := commands.NewRemoveExecutorCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}
