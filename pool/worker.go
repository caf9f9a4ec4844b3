package pool

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/corral-go/corral/internal/cpu"
)

// worker is one execution context. It shares no state with the
// coordinator: it receives dispatches on its own channel, runs the unit
// of work, and sends back exactly one completion per dispatch. It never
// initiates communication otherwise and never holds more than one
// outstanding dispatch (the channel has capacity one and the coordinator
// only dispatches to free slots).
type worker[T any, R any] struct {
	slot        int
	tasks       chan dispatch[T]
	completions chan<- completion[R]

	work    UnitOfWork[T, R]
	limiter *rate.Limiter
	pin     bool

	onStart func(slot int)
	onStop  func(slot int)
}

func newWorker[T any, R any](slot int, p *Pool[T, R]) *worker[T, R] {
	return &worker[T, R]{
		slot:        slot,
		tasks:       make(chan dispatch[T], 1),
		completions: p.completions,
		work:        p.work,
		limiter:     p.conf.limiter,
		pin:         p.conf.pinWorkers,
		onStart:     p.conf.onWorkerStart,
		onStop:      p.conf.onWorkerStop,
	}
}

// run is the worker loop. It exits when the pool context is cancelled or
// after reporting a crash, because a panic leaves this execution context
// suspect and the coordinator replaces it with a fresh one.
func (w *worker[T, R]) run(ctx context.Context) {
	if w.pin {
		release := cpu.Pin(w.slot)
		defer release()
	}

	if w.onStart != nil {
		w.onStart(w.slot)
	}
	defer func() {
		if w.onStop != nil {
			w.onStop(w.slot)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-w.tasks:
			if !w.execute(ctx, d) {
				return
			}
		}
	}
}

// execute runs one dispatch and reports exactly one completion for it.
// The returned flag is false after a crash report.
func (w *worker[T, R]) execute(ctx context.Context, d dispatch[T]) (alive bool) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			w.report(ctx, completion[R]{
				slot:     w.slot,
				id:       d.id,
				crashed:  true,
				panicked: r,
				stack:    buf[:n],
				elapsed:  time.Since(start),
			})
			alive = false
		}
	}()

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			w.report(ctx, completion[R]{slot: w.slot, id: d.id, err: err, elapsed: time.Since(start)})
			return true
		}
	}

	value, err := w.work(ctx, d.payload)
	w.report(ctx, completion[R]{slot: w.slot, id: d.id, value: value, err: err, elapsed: time.Since(start)})
	return true
}

// report hands a completion to the coordinator. The channel is buffered
// with one slot per worker, so this only ever blocks after an immediate
// shutdown has abandoned the coordinator, which the context case covers.
func (w *worker[T, R]) report(ctx context.Context, c completion[R]) {
	select {
	case w.completions <- c:
	case <-ctx.Done():
	}
}
