package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
)

// Reconciler periodically re-derives every user's balances and analytic
// snapshots from the entries table. The mutations keep both consistent on
// their own; the job exists to repair drift after manual data fixes and to
// backfill snapshots after restores.
type Reconciler struct {
	userSvc   portssvc.UserSvcFacade
	ledgerSvc portssvc.LedgerSvcFacade
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewReconciler creates the reconciliation job runner.
func NewReconciler(userSvc portssvc.UserSvcFacade, ledgerSvc portssvc.LedgerSvcFacade, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		userSvc:   userSvc,
		ledgerSvc: ledgerSvc,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the job with the given cron spec and launches the
// scheduler in its own goroutine.
func (r *Reconciler) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.RunOnce); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("reconciler scheduled", slog.String("spec", spec))
	return nil
}

// Stop halts the scheduler, waiting for a running pass to finish.
func (r *Reconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce reconciles every active user. Per-user failures are logged and
// skipped so one broken ledger does not block the rest.
func (r *Reconciler) RunOnce() {
	ctx := context.Background()
	userIDs, err := r.userSvc.ListUserIDs(ctx)
	if err != nil {
		r.logger.Error("reconciler failed to list users", slog.String("error", err.Error()))
		return
	}

	failures := 0
	for _, userID := range userIDs {
		if err := r.ledgerSvc.ReconcileUser(ctx, userID); err != nil {
			failures++
			r.logger.Error("reconciliation failed",
				slog.String("userID", userID),
				slog.String("error", err.Error()),
			)
		}
	}
	r.logger.Info("reconciliation pass finished",
		slog.Int("users", len(userIDs)),
		slog.Int("failures", failures),
	)
}
