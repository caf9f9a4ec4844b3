package pool

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the pool.
type Option func(*config)

type config struct {
	workers    int
	workersSet bool
	pinWorkers bool

	limiter    *rate.Limiter
	logger     *zap.Logger
	registerer prometheus.Registerer

	onWorkerStart func(slot int)
	onWorkerStop  func(slot int)
}

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
}

func (c *config) validate() error {
	if c.workersSet && c.workers < 1 {
		return errInvalidConfig("worker count must be at least 1")
	}
	return nil
}

// WithWorkers sets the number of workers. The pool size is fixed for its
// whole lifetime. If not specified, it defaults to runtime.GOMAXPROCS(0).
// A count below 1 makes New fail with ErrInvalidConfiguration.
func WithWorkers(count int) Option {
	return func(c *config) {
		c.workers = count
		c.workersSet = true
	}
}

// WithPinWorkers locks each worker goroutine to an OS thread and, where
// the platform supports it, pins that thread to a CPU core. Useful for
// cache-sensitive CPU-bound work; it reduces scheduler flexibility, so
// leave it off unless profiling shows a benefit.
func WithPinWorkers(pin bool) Option {
	return func(c *config) {
		c.pinWorkers = pin
	}
}

// WithRateLimit caps how fast workers start unit-of-work invocations,
// shared across the whole pool. Submission is not limited; queued tasks
// simply wait their turn.
//
// Example:
//
//	pool.WithRateLimit(10, 5) // 10 tasks/sec, bursts of 5
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithLogger sets the logger for pool lifecycle events (startup, worker
// crash and replacement, shutdown). Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics registers the pool's Prometheus collectors with the given
// registerer. Without this option the pool records only the cheap atomic
// counters exposed by Stats.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = registerer
	}
}

// WithWorkerHooks installs callbacks invoked on the worker goroutine when
// it starts and when it stops, including replacements after a crash.
// Either hook may be nil. Hooks must not block; they run on the worker's
// own goroutine.
func WithWorkerHooks(onStart, onStop func(slot int)) Option {
	return func(c *config) {
		c.onWorkerStart = onStart
		c.onWorkerStop = onStop
	}
}
