package pool

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrPoolClosed is reported once shutdown has begun: synchronously by
	// Submit, and through the future of every task that was still pending
	// (or, on immediate shutdown, still running) when the pool closed.
	//
	// Example:
	//
	//	if errors.Is(err, pool.ErrPoolClosed) {
	//	    // the pool is gone; do not resubmit here
	//	}
	ErrPoolClosed = errors.New("pool: closed")

	// ErrInvalidConfiguration is returned by New when the options cannot
	// produce a working pool, for example a worker count below one or a
	// nil unit of work. It is never reported mid-operation.
	ErrInvalidConfiguration = errors.New("pool: invalid configuration")
)

func errInvalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, msg)
}

// TaskExecutionError wraps an error returned by the unit of work. It is
// local to the one task that failed; the worker that ran it stays in the
// pool and other tasks are unaffected. Retrying is the caller's decision,
// by resubmitting the payload.
type TaskExecutionError struct {
	ID  uuid.UUID
	Err error
}

func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("pool: task %s failed: %v", e.ID, e.Err)
}

// Unwrap exposes the unit of work's error to errors.Is and errors.As.
func (e *TaskExecutionError) Unwrap() error {
	return e.Err
}

// WorkerCrashedError reports that the worker running the task panicked.
// The panic value and the worker's stack at the time are preserved. The
// pool replaces the crashed worker transparently, so its capacity is
// already restored by the time the caller sees this error.
type WorkerCrashedError struct {
	ID    uuid.UUID
	Slot  int
	Panic any
	Stack []byte
}

func (e *WorkerCrashedError) Error() string {
	return fmt.Sprintf("pool: worker %d crashed running task %s: %v", e.Slot, e.ID, e.Panic)
}
