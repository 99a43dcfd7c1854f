// Package shutdownqueue holds a process-wide LIFO queue of cleanup
// tasks, drained once at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	_ = shutdownqueue.Shutdown(ctx)
//
// Tasks run in reverse registration order. Shutdown is idempotent;
// errors are aggregated with errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it cannot finish.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add registers a task to run on Shutdown, in LIFO order. Safe to call
// from any goroutine. Nil tasks and tasks added after shutdown started
// are ignored.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains the queue. On ctx cancellation mid-drain it stops
// early, returning the context error joined with any task errors so far.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	pending := tasks
	tasks = nil
	closed = true
	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, pending[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
