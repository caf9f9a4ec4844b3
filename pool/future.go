package pool

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Future is the handle returned by Submit for a result that is not yet
// available. It is resolved exactly once, with either the unit of work's
// return value or an error, and only by the pool coordinator. All methods
// are safe for concurrent use and all read paths return the same outcome
// once it is set.
type Future[R any] struct {
	id   uuid.UUID
	done chan struct{}

	// value and err are written once, before done is closed, and never
	// touched again. Readers must observe done first.
	value R
	err   error
}

func newFuture[R any](id uuid.UUID) *Future[R] {
	return &Future[R]{
		id:   id,
		done: make(chan struct{}),
	}
}

// complete resolves the future with a value. Coordinator only.
func (f *Future[R]) complete(value R) {
	f.value = value
	close(f.done)
}

// fail resolves the future with an error. Coordinator only.
func (f *Future[R]) fail(err error) {
	f.err = err
	close(f.done)
}

// TaskID returns the id the pool assigned to this task at submission.
func (f *Future[R]) TaskID() uuid.UUID {
	return f.id
}

// Get blocks until the future is resolved and returns its outcome.
// Repeated calls return the same result.
//
// Example:
//
//	future, _ := p.Submit(payload)
//	value, err := future.Get()
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the future is resolved or the context is done.
// A context error does not resolve the future; the task keeps running and
// the result can still be retrieved later.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is Wait with a deadline relative to now.
//
// Example:
//
//	value, err := future.GetWithTimeout(5 * time.Second)
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero R
		return zero, context.DeadlineExceeded
	}
}

// IsReady reports whether the future has been resolved, without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the future is resolved,
// for use in the caller's own select loops.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
