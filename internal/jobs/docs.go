// Package jobs provides scheduled background tasks.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(expireHandler, cfg.PaymentSweepSpec, time.Now, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// PaymentSessionSweepJob closes payment sessions whose window is over and
// lets the customer know the link is no longer valid. It runs every minute
// unless PAYMENT_SWEEP_SPEC says otherwise.
//
// A failed sweep is logged and retried on the next tick.
package jobs
