// Package mainthread runs functions on the goroutine that owns the window
// system. GLFW requires window and context creation on the main thread,
// while capability probes run concurrently.
package mainthread

import (
	"context"
	"errors"
)

// ErrStopped is returned by Call after Stop.
var ErrStopped = errors.New("main thread queue stopped")

type funcRun struct {
	f    func()
	done chan struct{}
}

// Queue carries calls to the main thread. The zero value is not usable.
type Queue struct {
	calls   chan funcRun
	stopped chan struct{}
}

// New creates a queue. Only the owner of the main thread may call Drain,
// Pump or Stop.
func New() *Queue {
	return &Queue{
		calls:   make(chan funcRun),
		stopped: make(chan struct{}),
	}
}

// Call runs f on the main thread and waits for it to return. If ctx ends
// after f was handed over, f still runs but Call returns ctx.Err().
func (q *Queue) Call(ctx context.Context, f func()) error {
	run := funcRun{f: f, done: make(chan struct{})}
	select {
	case q.calls <- run:
	case <-q.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-run.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every call that is already waiting and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case run := <-q.calls:
			q.run(run)
			n++
		default:
			return n
		}
	}
}

// Pump runs calls until done is closed or ctx ends.
func (q *Queue) Pump(ctx context.Context, done <-chan struct{}) error {
	for {
		select {
		case run := <-q.calls:
			q.run(run)
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop makes later Calls fail. It is safe to call more than once.
func (q *Queue) Stop() {
	select {
	case <-q.stopped:
	default:
		close(q.stopped)
	}
}

func (q *Queue) run(run funcRun) {
	defer close(run.done)
	run.f()
}
