// Package runsync drives one context-aware computation to completion from a
// synchronous call site.
package runsync

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrNestedRun is returned when Run is called with a context that already
// belongs to a running bridge.
var ErrNestedRun = errors.New("runsync: Run called from within a running computation")

type runningKey struct{}

// Running reports whether ctx was derived from a context handed out by Run.
func Running(ctx context.Context) bool {
	running, _ := ctx.Value(runningKey{}).(bool)
	return running
}

// Observer is notified after each run.
type Observer interface {
	ObserveRun(d time.Duration, err error)
}

// Runner runs computations and reports them to an optional Observer.
type Runner struct {
	Observer Observer
}

// Run executes fn on a fresh context scoped to this call, waits for it to
// finish, tears the context down, and returns fn's result. fn's error is
// returned unchanged. A panic in fn is re-raised on the caller's goroutine.
// There is no timeout beyond what ctx itself carries.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return RunWith(ctx, Runner{}, fn)
}

// RunWith is Run with an explicit Runner.
func RunWith[T any](ctx context.Context, r Runner, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	if Running(ctx) {
		return zero, ErrNestedRun
	}

	start := time.Now()
	runCtx, cancel := context.WithCancel(context.WithValue(ctx, runningKey{}, true))
	defer cancel()

	var (
		result    T
		recovered any
		stack     []byte
	)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				recovered = p
				stack = debug.Stack()
			}
		}()
		result, err = fn(gctx)
		return err
	})
	err := g.Wait()
	cancel()

	if recovered != nil {
		if r.Observer != nil {
			r.Observer.ObserveRun(time.Since(start), fmt.Errorf("panic: %v", recovered))
		}
		panic(&PanicError{Value: recovered, Stack: stack})
	}
	if r.Observer != nil {
		r.Observer.ObserveRun(time.Since(start), err)
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}

// Wrap turns a context-aware function into a blocking one that runs each
// call through Run on context.Background().
func Wrap[A, T any](fn func(context.Context, A) (T, error)) func(A) (T, error) {
	return func(arg A) (T, error) {
		return Run(context.Background(), func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		})
	}
}

// PanicError carries a value recovered from a computation together with the
// stack of the goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap returns the recovered value when it is an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}
