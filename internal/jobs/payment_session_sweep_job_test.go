package jobs_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"studydesk/internal/adapters/out/jsonstore"
	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/model/order/ordertest"
	"studydesk/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW {
	return f()
}

type published struct {
	orderID int64
	notices []order.Notice
}

type publisher struct {
	calls []published
}

func (p *publisher) Publish(_ context.Context, o *order.Order, notices []order.Notice) {
	p.calls = append(p.calls, published{orderID: o.ID(), notices: notices})
}

func newSweepJob(t *testing.T, now time.Time) (*jobs.PaymentSessionSweepJob, *jsonstore.Store, *publisher) {
	t.Helper()
	ctx := t.Context()

	store := jsonstore.NewDirStore(t.TempDir(), slog.Default())

	paying := ordertest.At(t, 1, order.AwaitingPayment)
	require.NoError(t, paying.StartPayment(ordertest.Customer, ordertest.Session()))
	paying.PullNotices()

	idle := ordertest.At(t, 2, order.AwaitingPayment)

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, paying))
	require.NoError(t, uow.OrderRepository().Add(ctx, idle))
	require.NoError(t, uow.Commit(ctx))

	pub := &publisher{}
	handler := commands.NewExpirePaymentSessionsCommandHandler(
		uowFactory(func() commands.UoW { return store.Create() }), pub)

	job := jobs.NewPaymentSessionSweepJob(handler, "", func() time.Time { return now }, slog.Default())
	return job, store, pub
}

func loadOrder(t *testing.T, store *jsonstore.Store, id int64) *order.Order {
	t.Helper()
	ctx := t.Context()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, id)
	require.NoError(t, err)
	return o
}

func TestPaymentSessionSweepJob_Sweep_ExpiresOverdueSessions(t *testing.T) {
	job, store, pub := newSweepJob(t, ordertest.Created.Add(16*time.Minute))

	expired := job.Sweep(t.Context())

	assert.Equal(t, 1, expired)
	assert.Nil(t, loadOrder(t, store, 1).Payment())
	assert.Equal(t, order.AwaitingPayment, loadOrder(t, store, 1).Status())

	require.Len(t, pub.calls, 1)
	assert.Equal(t, int64(1), pub.calls[0].orderID)
	require.Len(t, pub.calls[0].notices, 1)
	assert.Equal(t, order.NoticePaymentExpired, pub.calls[0].notices[0].Kind)
}

func TestPaymentSessionSweepJob_Sweep_KeepsOpenSessions(t *testing.T) {
	job, store, pub := newSweepJob(t, ordertest.Created.Add(5*time.Minute))

	expired := job.Sweep(t.Context())

	assert.Zero(t, expired)
	assert.NotNil(t, loadOrder(t, store, 1).Payment())
	assert.Empty(t, pub.calls)
}

func TestPaymentSessionSweepJob_StartStop(t *testing.T) {
	job, _, _ := newSweepJob(t, ordertest.Created)

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_InvalidSpec(t *testing.T) {
	handler := commands.NewExpirePaymentSessionsCommandHandler(
		uowFactory(func() commands.UoW { return nil }), &publisher{})

	manager := jobs.NewJobManager(handler, "not a cron spec", time.Now, slog.Default())

	assert.Error(t, manager.StartAll())
}
