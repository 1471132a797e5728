package proxy

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var errNotCompleted = errors.New("operation returned without completing its future")

// Future is the result of an asynchronous proxy operation.
//
// A Future completes exactly once. Cancel withdraws interest: an operation
// whose Future was cancelled before it completed never updates a cache.
type Future[T any] struct {
	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc
	value  T
	err    error
}

func newFuture[T any](cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// Completed returns a future that already holds v.
func Completed[T any](v T) *Future[T] {
	f := newFuture[T](nil)
	f.complete(v, nil)
	return f
}

// Failed returns a future that already failed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T](nil)
	var zero T
	f.complete(zero, err)
	return f
}

// complete records the outcome. Later calls are ignored and return false.
func (f *Future[T]) complete(v T, err error) bool {
	completed := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
		completed = true
	})
	return completed
}

// Done returns a channel closed when the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome without unwrapping. It blocks until the
// future completes; use Await to also honor a context.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.value, f.err
}

// Cancel withdraws interest in the operation.
func (f *Future[T]) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
}

// Await blocks until f completes or ctx is done, then returns the value or
// the unwrapped failure.
//
// A *ServiceError or *TransportError is returned unchanged. A failure with
// no protocol cause, including cancellation, becomes *UnexpectedError; an
// expired deadline becomes a *TransportError with Bad_Timeout.
func Await[T any](ctx context.Context, f *Future[T]) (T, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		f.Cancel()
		select {
		case <-f.done:
		default:
			var zero T
			return zero, unwrapFailure(ctx.Err())
		}
	}
	if f.err != nil {
		return f.value, unwrapFailure(f.err)
	}
	return f.value, nil
}

// goAsync runs fn on its own goroutine with a cancellable child of ctx.
// fn is responsible for completing the future; a panic completes it with
// an *UnexpectedError.
func goAsync[T any](ctx context.Context, fn func(ctx context.Context, f *Future[T])) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := newFuture[T](cancel)

	go func() {
		defer cancel()
		defer func() {
			var zero T
			if r := recover(); r != nil {
				f.complete(zero, &UnexpectedError{Err: fmt.Errorf("panic: %v", r)})
				return
			}
			f.complete(zero, &UnexpectedError{Err: errNotCompleted})
		}()
		fn(ctx, f)
	}()
	return f
}

// Then returns a future completed with fn applied to the value of f.
// Cancelling the returned future cancels f.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := newFuture[U](f.Cancel)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero U
				out.complete(zero, &UnexpectedError{Err: fmt.Errorf("panic: %v", r)})
			}
		}()
		v, err := f.Result()
		var u U
		if err == nil {
			u, err = fn(v)
		}
		out.complete(u, err)
	}()
	return out
}
