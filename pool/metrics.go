package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeCrash   = "crash"
)

// metrics holds the pool's Prometheus collectors. Present only when the
// pool was built with WithMetrics.
type metrics struct {
	submitted    prometheus.Counter
	completed    *prometheus.CounterVec
	duration     prometheus.Histogram
	busyWorkers  prometheus.Gauge
	queueDepth   prometheus.Gauge
	replacements prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	return &metrics{
		submitted: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "corral_pool_tasks_submitted_total",
				Help: "Total number of payloads accepted by Submit",
			},
		),
		completed: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "corral_pool_tasks_completed_total",
				Help: "Total number of resolved tasks by outcome",
			},
			[]string{"outcome"},
		),
		duration: promauto.With(registerer).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "corral_pool_task_duration_seconds",
				Help:    "Unit-of-work execution time in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		busyWorkers: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "corral_pool_workers_busy",
				Help: "Number of workers currently running a task",
			},
		),
		queueDepth: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "corral_pool_queue_depth",
				Help: "Number of tasks waiting for a free worker",
			},
		),
		replacements: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "corral_pool_worker_replacements_total",
				Help: "Total number of workers replaced after a crash",
			},
		),
	}
}

func (m *metrics) observe(crashed bool, err error, elapsed time.Duration) {
	switch {
	case crashed:
		m.completed.WithLabelValues(outcomeCrash).Inc()
	case err != nil:
		m.completed.WithLabelValues(outcomeError).Inc()
	default:
		m.completed.WithLabelValues(outcomeSuccess).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}
