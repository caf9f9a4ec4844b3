package pool

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UnitOfWork is the function a worker runs for every accepted payload.
// The context is the pool's context: it is cancelled when the pool shuts
// down immediately, so long-running work that honors it can stop early.
//
// The pool never inspects or mutates the payload. Ownership of the payload
// transfers to the pool at Submit and ownership of the returned value
// transfers back to the submitter through the Future; neither side may
// keep mutating them after the hand-off.
//
// Type parameters:
//   - T: the payload type
//   - R: the result type
type UnitOfWork[T any, R any] func(ctx context.Context, payload T) (R, error)

// pendingTask pairs an accepted payload with its write-once result slot.
// It lives in the coordinator's pending queue until a worker is free and
// in the inflight map from dispatch to completion.
type pendingTask[T any, R any] struct {
	id      uuid.UUID
	payload T
	future  *Future[R]
}

// dispatch is the only message a worker ever receives.
type dispatch[T any] struct {
	id      uuid.UUID
	payload T
}

// completion is the only message a worker ever sends, exactly one per
// dispatch. crashed marks a panic in the unit of work; value and err are
// meaningless in that case and panicked/stack carry the recovered state.
type completion[R any] struct {
	slot     int
	id       uuid.UUID
	value    R
	err      error
	crashed  bool
	panicked any
	stack    []byte
	elapsed  time.Duration
}
