package pool

import "sync/atomic"

// counters are the pool's always-on bookkeeping. They are cheap atomics:
// the coordinator and Submit update them without locks, so a snapshot
// taken during concurrent operation may be momentarily inconsistent.
type counters struct {
	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	crashed   atomic.Uint64
	replaced  atomic.Uint64

	pending atomic.Int64
	busy    atomic.Int64
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	// Submitted counts every payload accepted by Submit.
	Submitted uint64

	// Completed counts tasks whose unit of work returned a value.
	Completed uint64

	// Failed counts tasks whose unit of work returned an error.
	Failed uint64

	// Crashed counts tasks lost to a worker panic.
	Crashed uint64

	// Replaced counts workers spawned to take over a crashed slot.
	Replaced uint64

	// Pending is the current depth of the waiting FIFO.
	Pending int64

	// Busy is the number of workers currently running a task.
	Busy int64

	// Workers is the configured pool size.
	Workers int
}

// Stats returns a snapshot of the pool's counters.
//
// Example:
//
//	s := p.Stats()
//	fmt.Printf("%d/%d done, %d waiting\n", s.Completed, s.Submitted, s.Pending)
func (p *Pool[T, R]) Stats() Stats {
	return Stats{
		Submitted: p.counters.submitted.Load(),
		Completed: p.counters.completed.Load(),
		Failed:    p.counters.failed.Load(),
		Crashed:   p.counters.crashed.Load(),
		Replaced:  p.counters.replaced.Load(),
		Pending:   p.counters.pending.Load(),
		Busy:      p.counters.busy.Load(),
		Workers:   len(p.workers),
	}
}
