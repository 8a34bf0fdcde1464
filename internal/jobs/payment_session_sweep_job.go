package jobs

import (
	"context"
	"log/slog"
	"time"

	"studydesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec runs the sweep at the start of every minute.
const DefaultSweepSpec = "0 * * * * *"

// PaymentSessionSweepJob closes payment sessions whose window is over so the
// customer has to request a fresh link.
type PaymentSessionSweepJob struct {
	handler commands.ExpirePaymentSessionsCommandHandler
	spec    string
	clock   func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentSessionSweepJob creates the sweep job. spec is a six-field cron
// expression; an empty spec means DefaultSweepSpec.
func NewPaymentSessionSweepJob(
	handler commands.ExpirePaymentSessionsCommandHandler,
	spec string,
	clock func() time.Time,
	logger *slog.Logger,
) *PaymentSessionSweepJob {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if clock == nil {
		clock = time.Now
	}
	return &PaymentSessionSweepJob{
		handler: handler,
		spec:    spec,
		clock:   clock,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_session_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *PaymentSessionSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment session sweep job started", "spec", j.spec)
	return nil
}

// Sweep runs one pass and returns the number of sessions closed.
func (j *PaymentSessionSweepJob) Sweep(ctx context.Context) int {
	cmd := commands.NewExpirePaymentSessionsCommand(j.clock())

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment session sweep failed", "error", err)
		return 0
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Payment sessions expired", "count", expired)
	}
	return expired
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *PaymentSessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment session sweep job stopped")
}
