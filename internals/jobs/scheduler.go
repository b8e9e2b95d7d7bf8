// file: internals/jobs/scheduler.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	recSvc "coursedesk_backend/internals/features/finance/reconciliation/service"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/helpers/logger"
)

const (
	jobTimeout       = 10 * time.Minute
	PayoutSyncWindow = 14 * 24 * time.Hour
)

type Config struct {
	PayoutSyncSpec string // empty disables
	ReminderSpec   string // empty disables
}

type Deps struct {
	DB      *gorm.DB
	Payouts recSvc.PayoutSource // nil when Stripe is not configured
	Mailer  *email.Mailer       // nil when email is not configured
}

// Start registers the jobs and starts the scheduler. Overlapping runs of the
// same job are skipped. Stop the returned cron on shutdown.
func Start(cfg Config, d Deps) (*cron.Cron, error) {
	zl := logger.New().With().Str("component", "cron").Logger()
	cl := cron.PrintfLogger(&zl)

	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if cfg.PayoutSyncSpec != "" && d.Payouts != nil {
		svc := recSvc.NewService(recSvc.NewGormStore(d.DB))
		if _, err := c.AddFunc(cfg.PayoutSyncSpec, func() {
			run("payout_sync", d.DB, func(ctx context.Context) (map[string]any, error) {
				sum, err := svc.SyncPayouts(ctx, d.Payouts, time.Now().Add(-PayoutSyncWindow))
				return map[string]any{"payouts": sum.Payouts, "charges": sum.Charges, "transactions": sum.Transactions}, err
			})
		}); err != nil {
			return nil, fmt.Errorf("schedule payout sync %q: %w", cfg.PayoutSyncSpec, err)
		}
		zl.Info().Str("spec", cfg.PayoutSyncSpec).Msg("payout sync scheduled")
	}

	if cfg.ReminderSpec != "" && d.Mailer != nil {
		rem := NewPastDueReminders(d.DB, d.Mailer)
		if _, err := c.AddFunc(cfg.ReminderSpec, func() {
			run("past_due_reminders", d.DB, func(ctx context.Context) (map[string]any, error) {
				sum, err := rem.Run(ctx)
				return map[string]any{"candidates": sum.Candidates, "sent": sum.Sent, "failed": sum.Failed}, err
			})
		}); err != nil {
			return nil, fmt.Errorf("schedule reminders %q: %w", cfg.ReminderSpec, err)
		}
		zl.Info().Str("spec", cfg.ReminderSpec).Msg("past-due reminders scheduled")
	}

	c.Start()
	return c, nil
}

func run(name string, db *gorm.DB, fn func(ctx context.Context) (map[string]any, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	log := logger.New().With().Str("job", name).Logger()
	ctx = logger.WithContext(ctx, log)

	started := time.Now()
	details, err := fn(ctx)
	if details == nil {
		details = map[string]any{}
	}
	details["duration_ms"] = time.Since(started).Milliseconds()

	if err != nil {
		details["error"] = err.Error()
		log.Error().Err(err).Fields(details).Msg("job failed")
	} else {
		log.Info().Fields(details).Msg("job finished")
	}
	logSvc.Record(ctx, db, logSvc.Entry{Action: "job." + name, Entity: "job", Actor: "cron", Details: details})
}

// Stop waits for running jobs up to ctx's deadline.
func Stop(ctx context.Context, c *cron.Cron) {
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}
