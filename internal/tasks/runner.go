package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/medetbek/taskqueue/internal/metrics"
)

// Dequeuer is the subset of Queue the runner needs; tests inject a fake.
type Dequeuer interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)
}

// Runner drains the simulated task queue with bounded concurrency.
type Runner struct {
	id          string
	queue       Dequeuer
	logger      *slog.Logger
	popTimeout  time.Duration
	processTime time.Duration
	sem         chan struct{}
}

func NewRunner(queue Dequeuer, logger *slog.Logger, popTimeout time.Duration, concurrency int) *Runner {
	hostname, _ := os.Hostname()
	id := fmt.Sprintf("%s-%d", hostname, os.Getpid())
	return &Runner{
		id:          id,
		queue:       queue,
		logger:      logger.With("worker_id", id),
		popTimeout:  popTimeout,
		processTime: 2 * time.Second,
		sem:         make(chan struct{}, concurrency),
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("task runner started", "concurrency", cap(r.sem))

	for {
		if ctx.Err() != nil {
			r.drain()
			r.logger.Info("task runner shut down")
			return
		}

		task, err := r.queue.Dequeue(ctx, r.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.Error("dequeue task", "error", err)
			time.Sleep(r.popTimeout)
			continue
		}
		if task == nil {
			continue
		}

		r.sem <- struct{}{}
		go func(t *Task) {
			defer func() { <-r.sem }()
			r.process(ctx, t)
		}(task)
	}
}

// process is a simulated placeholder: it sleeps, emits a fake summary, and
// records the outcome. It never touches the job record.
func (r *Runner) process(ctx context.Context, t *Task) {
	metrics.TasksInFlight.Inc()
	defer metrics.TasksInFlight.Dec()

	r.logger.Info("processing task", "task_id", t.ID, "kind", t.Kind, "job_id", t.JobID)

	select {
	case <-ctx.Done():
		metrics.TasksProcessedTotal.WithLabelValues("cancelled").Inc()
		return
	case <-time.After(r.processTime):
	}

	title := t.Title
	if len(title) > 80 {
		title = title[:80]
	}
	r.logger.Info("task processed",
		"task_id", t.ID,
		"job_id", t.JobID,
		"summary", "Summary: "+title,
		"wait", time.Since(t.EnqueuedAt).String(),
	)
	metrics.TasksProcessedTotal.WithLabelValues("completed").Inc()
}

// drain waits for in-flight tasks to finish before shutdown.
func (r *Runner) drain() {
	for i := 0; i < cap(r.sem); i++ {
		r.sem <- struct{}{}
	}
}
