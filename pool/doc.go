// Package pool provides a bounded worker pool for parallel execution of
// CPU-bound units of work, with a future per task.
//
// A pool is built around one unit-of-work function and a fixed number of
// workers. Submit hands back a Future immediately and never waits for a
// worker: when all workers are busy the task joins a FIFO that is drained
// as workers free up.
//
// # Quick start
//
//	p, err := pool.New(func(ctx context.Context, img []byte) (Thumb, error) {
//	    return renderThumb(img)
//	}, pool.WithWorkers(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(pool.Graceful)
//
//	future, err := p.Submit(imgData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	thumb, err := future.Get()
//
// # Ownership model
//
// All dispatch state (which workers are free, the pending FIFO, the
// inflight map) is owned by a single coordinator goroutine. Submitters
// and workers communicate with it exclusively through channels. Workers
// share no mutable state with the coordinator, so arbitrary, even
// crash-prone units of work cannot corrupt pool bookkeeping.
//
// # Failure semantics
//
// An error returned by the unit of work resolves that one future with a
// *TaskExecutionError; the worker stays in the pool. A panic resolves
// the future with a *WorkerCrashedError and retires the worker's
// goroutine; the coordinator installs a replacement in the same slot
// before making its next dispatch decision, so pool capacity is
// constant. Neither failure touches any other task.
//
// There is no retry in the pool: a caller who wants one resubmits.
// There is no in-flight cancellation and no per-task timeout; a unit of
// work that wants a deadline applies it internally via the context it
// receives.
//
// # Ordering
//
// Tasks that wait in the FIFO are dispatched in submission order.
// Because the coordinator refills a freed worker from the FIFO in the
// same event that freed it, a worker is only ever idle while the FIFO is
// empty; queued work is never overtaken by a later submission.
//
// # Batch helper
//
// Process submits a slice and awaits all futures, preserving order:
//
//	results, err := p.Process(ctx, payloads)
//
// # Observability
//
// Stats returns cheap atomic counters at any time. WithMetrics registers
// Prometheus collectors (submission and completion counters by outcome,
// queue depth, busy workers, task duration, worker replacements), and
// WithLogger routes lifecycle events to a zap logger.
package pool
