package async

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Future holds the outcome of a function started by Async. The outcome is
// written once, before done is closed.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Done is closed when the function has returned or panicked.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// Await blocks until the function finishes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout returns ErrTimeout if the function is still running after
// d. The function itself keeps running; cancel its context to stop it.
func (f *Future[U]) AwaitWithTimeout(d time.Duration) (U, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// settle runs fn and records its result. A panic is recorded as an error
// wrapping ErrPanicked with a zero value.
func (f *Future[U]) settle(fn func() (U, error)) {
	defer close(f.done)
	defer func() {
		if r := recover(); r != nil {
			var zero U
			f.value, f.err = zero, errors.Join(ErrPanicked, fmt.Errorf("%v", r))
		}
	}()
	f.value, f.err = fn()
}

// Async starts fn(ctx, arg) in its own goroutine. When ctx is already done,
// fn is not called and the future carries ctx.Err().
func Async[T, U any](ctx context.Context, arg T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	go f.settle(func() (U, error) {
		if err := ctx.Err(); err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, arg)
	})
	return f
}

// Settled is the outcome of one future.
type Settled[U any] struct {
	Value U
	Err   error
}

// AllSettled waits for every future and returns their outcomes in the order
// given. One error does not hide the others.
func AllSettled[U any](futures ...*Future[U]) []Settled[U] {
	out := make([]Settled[U], len(futures))
	for i, f := range futures {
		out[i].Value, out[i].Err = f.Await()
	}
	return out
}
