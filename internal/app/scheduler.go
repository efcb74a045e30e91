/**
 * @description
 * Cron scheduler setup for scheduled jobs.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	logger   *slog.Logger
	schedule string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, reconcileSchedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		jobs:     jobs,
		logger:   logger,
		schedule: reconcileSchedule,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.ReconcilePendingTransactions); err != nil {
		s.logger.Error("failed to schedule pending reconciliation job", "error", err)
	} else {
		s.logger.Info("scheduled pending reconciliation job", "schedule", s.schedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
