package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskqueue",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskqueue",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Simulated task queue metrics

	TasksEnqueuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskqueue",
		Name:      "tasks_enqueued_total",
		Help:      "Total simulated tasks pushed to the queue.",
	})

	TasksProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskqueue",
		Name:      "tasks_processed_total",
		Help:      "Total simulated tasks drained from the queue, by outcome.",
	}, []string{"outcome"})

	TasksInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "tasks_in_flight",
		Help:      "Number of simulated tasks currently being processed.",
	})

	// Janitor metrics

	JanitorPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskqueue",
		Name:      "janitor_purged_jobs_total",
		Help:      "Total finished jobs removed by the retention janitor.",
	})

	JanitorCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taskqueue",
		Name:      "janitor_cycle_duration_seconds",
		Help:      "Time taken for one janitor cycle.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		TasksEnqueuedTotal,
		TasksProcessedTotal,
		TasksInFlight,
		JanitorPurgedTotal,
		JanitorCycleDuration,
	)
}
