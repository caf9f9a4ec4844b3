package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process submits a whole slice and awaits every future. Results come
// back in payload order. The first error wins and cancels the remaining
// waits, but already-dispatched tasks still run to completion on their
// workers (in-flight cancellation is not a pool capability).
//
// Parameters:
//   - ctx: bounds the wait, not the work. If it is cancelled the call
//     returns ctx.Err() while unfinished tasks keep running.
//   - payloads: the batch; an empty slice returns an empty result.
//
// Example:
//
//	results, err := p.Process(ctx, []int{1, 2, 3, 4, 5})
func (p *Pool[T, R]) Process(ctx context.Context, payloads []T) ([]R, error) {
	if len(payloads) == 0 {
		return []R{}, nil
	}

	futures := make([]*Future[R], len(payloads))
	for i, payload := range payloads {
		f, err := p.Submit(payload)
		if err != nil {
			return nil, err
		}
		futures[i] = f
	}

	results := make([]R, len(payloads))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range futures {
		g.Go(func() error {
			value, err := f.Wait(ctx)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
