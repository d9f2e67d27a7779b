// Package async provides a minimal future abstraction for issuing independent
// network reads concurrently and joining them. It exists for request handlers
// that fan out to the database; it is not a general task scheduler.
package async

import (
	"context"
)

// Future represents the pending result of a computation started with Async.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation finishes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Async runs fn in its own goroutine and returns a Future for its result.
// A pre-canceled context resolves the future immediately with ctx.Err().
func Async[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// WaitAll joins every future and returns their results in argument order.
// If any future failed, WaitAll returns the first error encountered; callers
// treat the whole aggregate as failed and must not use partial results.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
