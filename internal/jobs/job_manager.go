package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"studydesk/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentSweepJob *PaymentSessionSweepJob
}

func NewJobManager(
	expirePaymentSessionsHandler commands.ExpirePaymentSessionsCommandHandler,
	sweepSpec string,
	clock func() time.Time,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentSweepJob: NewPaymentSessionSweepJob(expirePaymentSessionsHandler, sweepSpec, clock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment session sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentSweepJob.Stop()
}
