// Package async is the runtime half of gemini.
//
// Functions annotated with //gemini:maybe return a [Future] and use [Block],
// [Await] and [Ready] to express suspension. When the blocking variant is
// selected (build tag gemini_sync), the generator erases all of these calls,
// so this package is only linked into the suspending build.
//
//	//gemini:maybe
//	func Fetch(url string) async.Future[string] {
//		return async.Block(func() string {
//			return async.Await(download(url))
//		})
//	}
package async

import "context"

// Future is the eventual result of a suspending computation.
// The zero Future is already completed with the zero value of T.
type Future[T any] struct {
	s *state[T]
}

type state[T any] struct {
	done     chan struct{}
	val      T
	panicked bool
	panicVal interface{}
}

// Block runs fn in its own goroutine and returns a future of its result.
// A panic inside fn is re-raised by whoever awaits the future.
func Block[T any](fn func() T) Future[T] {
	s := &state[T]{done: make(chan struct{})}
	go func() {
		defer close(s.done)
		defer func() {
			if r := recover(); r != nil {
				s.panicked = true
				s.panicVal = r
			}
		}()
		s.val = fn()
	}()
	return Future[T]{s: s}
}

// Ready returns a future that is already completed with v.
func Ready[T any](v T) Future[T] {
	s := &state[T]{done: make(chan struct{}), val: v}
	close(s.done)
	return Future[T]{s: s}
}

// Await suspends until f completes and returns its value.
func Await[T any](f Future[T]) T {
	if f.s == nil {
		var zero T
		return zero
	}
	<-f.s.done
	return f.result()
}

// AwaitContext is like Await but gives up with ctx.Err() when ctx is
// done. In the blocking variant `v, err := AwaitContext(ctx, f)` becomes
// `v, err := f, ctx.Err()`, so it may only appear as the single value of
// a two-value assignment, declaration or return.
func AwaitContext[T any](ctx context.Context, f Future[T]) (T, error) {
	if f.s == nil {
		var zero T
		return zero, nil
	}
	select {
	case <-f.s.done:
		return f.result(), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f Future[T]) result() T {
	if f.s.panicked {
		panic(f.s.panicVal)
	}
	return f.s.val
}
