/**
 * @description
 * Scheduled job implementations. The reconciliation job sweeps pending
 * transactions that have sat unreviewed past the configured age and flags
 * them for operator attention, so a record orphaned mid-workflow is
 * surfaced instead of staying pending forever.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/swiftremit/payments-service/internal/store"
)

// Jobs holds the dependencies for scheduled jobs.
type Jobs struct {
	repo       store.Repository
	logger     *slog.Logger
	pendingAge time.Duration
}

// NewJobs creates a new jobs instance.
func NewJobs(repo store.Repository, logger *slog.Logger, pendingAge time.Duration) *Jobs {
	return &Jobs{repo: repo, logger: logger, pendingAge: pendingAge}
}

// ReconcilePendingTransactions flags stale pending transactions.
func (j *Jobs) ReconcilePendingTransactions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	flagged, err := j.repo.FlagStaleTransactions(ctx, j.pendingAge)
	if err != nil {
		j.logger.Error("pending reconciliation sweep failed", "error", err)
		return
	}
	if flagged > 0 {
		j.logger.Info("flagged stale pending transactions", "count", flagged, "older_than", j.pendingAge.String())
	}
}
