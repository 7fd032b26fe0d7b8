package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medetbek/taskqueue/internal/metrics"
	"github.com/medetbek/taskqueue/internal/repository"
	"github.com/robfig/cron/v3"
)

// Janitor purges DONE jobs older than the retention window on a cron
// schedule.
type Janitor struct {
	repo      repository.JobRepository
	logger    *slog.Logger
	schedule  cron.Schedule
	retention time.Duration
}

func NewJanitor(repo repository.JobRepository, logger *slog.Logger, cronExpr string, retention time.Duration) (*Janitor, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse janitor cron %q: %w", cronExpr, err)
	}
	return &Janitor{
		repo:      repo,
		logger:    logger.With("component", "janitor"),
		schedule:  sched,
		retention: retention,
	}, nil
}

func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("janitor started", "retention", j.retention.String())

	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("janitor shut down")
			return
		case <-timer.C:
			j.purge(ctx)
		}
	}
}

func (j *Janitor) purge(ctx context.Context) {
	start := time.Now()
	cutoff := start.Add(-j.retention)

	purged, err := j.repo.DeleteDoneBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("purge done jobs", "error", err)
		return
	}
	metrics.JanitorCycleDuration.Observe(time.Since(start).Seconds())
	if purged > 0 {
		metrics.JanitorPurgedTotal.Add(float64(purged))
		j.logger.Info("purged finished jobs", "count", purged, "cutoff", cutoff)
	}
}
