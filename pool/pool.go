package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corral-go/corral/internal/queue"
)

// ShutdownMode selects how Shutdown treats work that is not finished.
type ShutdownMode int

const (
	// Graceful stops admissions, lets every dispatched task finish, and
	// fails every still-pending task with ErrPoolClosed.
	Graceful ShutdownMode = iota

	// Immediate cancels the pool context and resolves every unresolved
	// future with ErrPoolClosed without waiting for running tasks. The
	// worker goroutines stop cooperatively; a unit of work that ignores
	// its context keeps its goroutine busy until it returns, but its
	// result is discarded.
	Immediate
)

// Pool runs one unit-of-work function over submitted payloads on a fixed
// set of workers. Submit hands back a Future that resolves exactly once.
//
// All dispatch decisions are made by a single coordinator goroutine that
// exclusively owns the free-worker queue, the pending FIFO, and the
// inflight bookkeeping. Submitters and workers reach it only through
// channels, so no two submissions can race for the same free worker and
// a worker crash cannot corrupt coordinator state.
//
// Type parameters:
//   - T: the payload type
//   - R: the result type
type Pool[T any, R any] struct {
	conf config
	work UnitOfWork[T, R]

	// workers is written by the coordinator only (replacement after a
	// crash); index = slot.
	workers []*worker[T, R]

	submissions chan *pendingTask[T, R]
	completions chan completion[R]
	shutdownCh  chan ShutdownMode
	done        chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu serializes Submit against Shutdown: Submit holds the read side
	// while it checks closed and sends, so a submission is either fully
	// accepted before shutdown begins or rejected with ErrPoolClosed.
	mu     sync.RWMutex
	closed atomic.Bool

	counters counters
	metrics  *metrics
}

// New constructs a pool of workers all bound to the given unit of work
// and starts them. The only place workers are created afterwards is the
// transparent replacement of a crashed one.
//
// It returns ErrInvalidConfiguration for a nil unit of work or a worker
// count below 1 (the count defaults to runtime.GOMAXPROCS(0) when the
// WithWorkers option is absent).
//
// Example:
//
//	p, err := pool.New(func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	}, pool.WithWorkers(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(pool.Graceful)
func New[T any, R any](work UnitOfWork[T, R], opts ...Option) (*Pool[T, R], error) {
	if work == nil {
		return nil, errInvalidConfig("unit of work must not be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool[T, R]{
		conf:        cfg,
		work:        work,
		workers:     make([]*worker[T, R], cfg.workers),
		submissions: make(chan *pendingTask[T, R], cfg.workers),
		completions: make(chan completion[R], cfg.workers),
		shutdownCh:  make(chan ShutdownMode, 1),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
	if cfg.registerer != nil {
		p.metrics = newMetrics(cfg.registerer)
	}

	for slot := range p.workers {
		p.spawn(slot)
	}
	go p.coordinate()

	cfg.logger.Info("pool started",
		zap.Int("workers", cfg.workers),
		zap.Bool("pinned", cfg.pinWorkers))
	return p, nil
}

// spawn installs a fresh worker in a slot and starts its goroutine.
// Called at construction and, from the coordinator, on replacement.
func (p *Pool[T, R]) spawn(slot int) {
	w := newWorker(slot, p)
	p.workers[slot] = w
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		w.run(p.ctx)
	}()
}

// Submit accepts a payload and returns a Future for its result. It never
// waits for a worker: if none is free the task joins the pending FIFO.
// The only synchronous failure is ErrPoolClosed after shutdown began.
//
// The future resolves exactly once, with the unit of work's value, a
// *TaskExecutionError, a *WorkerCrashedError, or ErrPoolClosed.
func (p *Pool[T, R]) Submit(payload T) (*Future[R], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	t := &pendingTask[T, R]{
		id:      uuid.New(),
		payload: payload,
	}
	t.future = newFuture[R](t.id)

	p.submissions <- t
	p.counters.submitted.Add(1)
	if p.metrics != nil {
		p.metrics.submitted.Inc()
	}
	return t.future, nil
}

// Shutdown stops the pool and blocks until termination is complete.
// Subsequent Submit calls fail with ErrPoolClosed. Calling Shutdown more
// than once is safe; later calls wait for the first to finish and the
// mode of the first call wins.
func (p *Pool[T, R]) Shutdown(mode ShutdownMode) {
	p.mu.Lock()
	if !p.closed.CompareAndSwap(false, true) {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.mu.Unlock()

	p.shutdownCh <- mode
	<-p.done

	p.conf.logger.Info("pool stopped", zap.Bool("graceful", mode == Graceful))
}

// IsClosed reports whether shutdown has begun.
func (p *Pool[T, R]) IsClosed() bool {
	return p.closed.Load()
}

// WorkerCount returns the configured pool size. It is constant: crashed
// workers are replaced, never removed.
func (p *Pool[T, R]) WorkerCount() int {
	return len(p.workers)
}

// coordinate is the single owner of dispatch state. Every mutation of
// the free-slot queue, the pending queue, and the inflight map happens
// here, one event at a time.
func (p *Pool[T, R]) coordinate() {
	defer close(p.done)

	free := queue.New[int](len(p.workers))
	for slot := range p.workers {
		free.Push(slot)
	}
	pending := queue.New[*pendingTask[T, R]](16)
	inflight := make(map[uuid.UUID]*pendingTask[T, R], len(p.workers))

	for {
		select {
		case t := <-p.submissions:
			if slot, ok := free.Pop(); ok {
				p.dispatchTo(slot, t, inflight)
			} else {
				pending.Push(t)
			}
			p.observeDepth(pending.Len(), len(inflight))

		case c := <-p.completions:
			t, ok := inflight[c.id]
			if !ok {
				continue
			}
			delete(inflight, c.id)
			p.resolve(t, c)

			slot := c.slot
			if c.crashed {
				p.replace(slot)
			}
			// Re-dispatch in the same event, so no submission can
			// observe this worker as free while the queue is non-empty.
			if next, ok := pending.Pop(); ok {
				p.dispatchTo(slot, next, inflight)
			} else {
				free.Push(slot)
			}
			p.observeDepth(pending.Len(), len(inflight))

		case mode := <-p.shutdownCh:
			p.drain(mode, pending, inflight)
			return
		}
	}
}

// dispatchTo records the task as inflight and hands it to the worker.
// The worker channel has a free slot by construction (only free workers
// are dispatched to), so this never blocks the coordinator.
func (p *Pool[T, R]) dispatchTo(slot int, t *pendingTask[T, R], inflight map[uuid.UUID]*pendingTask[T, R]) {
	inflight[t.id] = t
	p.workers[slot].tasks <- dispatch[T]{id: t.id, payload: t.payload}
}

// resolve writes the task's outcome into its future.
func (p *Pool[T, R]) resolve(t *pendingTask[T, R], c completion[R]) {
	switch {
	case c.crashed:
		p.counters.crashed.Add(1)
		p.conf.logger.Warn("worker crashed",
			zap.Int("slot", c.slot),
			zap.String("task", c.id.String()),
			zap.Any("panic", c.panicked))
		t.future.fail(&WorkerCrashedError{ID: c.id, Slot: c.slot, Panic: c.panicked, Stack: c.stack})
	case c.err != nil:
		p.counters.failed.Add(1)
		t.future.fail(&TaskExecutionError{ID: c.id, Err: c.err})
	default:
		p.counters.completed.Add(1)
		t.future.complete(c.value)
	}

	if p.metrics != nil {
		p.metrics.observe(c.crashed, c.err, c.elapsed)
	}
}

// replace puts a fresh worker into the slot of a crashed one. It runs
// before the next dispatch decision, so the pool is back at full
// capacity when that decision is made.
func (p *Pool[T, R]) replace(slot int) {
	p.spawn(slot)
	p.counters.replaced.Add(1)
	if p.metrics != nil {
		p.metrics.replacements.Inc()
	}
	p.conf.logger.Info("worker replaced", zap.Int("slot", slot))
}

// drain finishes shutdown. Tasks that were accepted by Submit but not
// yet seen by the coordinator count as pending and fail with
// ErrPoolClosed, like the pending queue itself.
func (p *Pool[T, R]) drain(mode ShutdownMode, pending *queue.Ring[*pendingTask[T, R]], inflight map[uuid.UUID]*pendingTask[T, R]) {
	for {
		select {
		case t := <-p.submissions:
			t.future.fail(ErrPoolClosed)
		default:
			goto buffered
		}
	}
buffered:
	for {
		t, ok := pending.Pop()
		if !ok {
			break
		}
		t.future.fail(ErrPoolClosed)
	}

	if mode == Immediate {
		p.cancel()
		for _, t := range inflight {
			t.future.fail(ErrPoolClosed)
		}
		p.observeDepth(0, 0)
		return
	}

	// Graceful: every dispatched task still resolves on its own merits.
	// A crash during this phase is reported but the worker is not
	// replaced; there is nothing left for a replacement to run.
	for len(inflight) > 0 {
		c := <-p.completions
		t, ok := inflight[c.id]
		if !ok {
			continue
		}
		delete(inflight, c.id)
		p.resolve(t, c)
	}
	p.observeDepth(0, 0)

	p.cancel()
	p.wg.Wait()
}

// observeDepth publishes the coordinator-owned queue depths to the
// atomic counters and, when enabled, the Prometheus gauges.
func (p *Pool[T, R]) observeDepth(pending, busy int) {
	p.counters.pending.Store(int64(pending))
	p.counters.busy.Store(int64(busy))
	if p.metrics != nil {
		p.metrics.queueDepth.Set(float64(pending))
		p.metrics.busyWorkers.Set(float64(busy))
	}
}
