package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/medetbek/taskqueue/config"
	"github.com/medetbek/taskqueue/internal/health"
	"github.com/medetbek/taskqueue/internal/infrastructure/postgres"
	ctxlog "github.com/medetbek/taskqueue/internal/log"
	"github.com/medetbek/taskqueue/internal/metrics"
	"github.com/medetbek/taskqueue/internal/tasks"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	queue, err := tasks.NewQueue(cfg.RedisURL, cfg.TaskQueueKey)
	if err != nil {
		stop()
		log.Fatalf("redis: %v", err)
	}
	defer queue.Close()

	logger.Info("worker dependencies connected")

	metrics.Register()
	checker := health.NewChecker(pool, queue, logger, prometheus.DefaultRegisterer)

	runner := tasks.NewRunner(
		queue,
		logger,
		time.Duration(cfg.PollIntervalSec)*time.Second,
		cfg.WorkerCount,
	)
	go runner.Start(ctx)

	jobRepo := postgres.NewJobRepository(pool)
	janitor, err := tasks.NewJanitor(
		jobRepo,
		logger,
		cfg.JanitorCron,
		time.Duration(cfg.RetentionDays)*24*time.Hour,
	)
	if err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}
	go janitor.Start(ctx)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("worker shut down")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
