// uictx is the task queue of a UI execution context.
//
// The goroutine that owns the UI context marks itself with Attach and then
// runs the tasks it receives from Tasks (or Drain). Other goroutines use
// Call to run a function on it and wait for the result.
package uictx

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNotRunning is returned by Call when no goroutine is servicing the
	// queue.
	ErrNotRunning = errors.New("ui context is not running")
	// ErrStopped is returned by Call when the context detached before the
	// task ran.
	ErrStopped = errors.New("ui context stopped")
)

// Request is a task waiting to run on the UI context
type Request struct {
	task func()
	done chan error
}

type Queue struct {
	requests chan Request

	mu       sync.Mutex
	attached bool
	detached chan struct{}
}

func New() *Queue {
	return &Queue{
		requests: make(chan Request),
	}
}

// Attach marks the queue as serviced. It returns false if it already was.
func (q *Queue) Attach() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.attached {
		return false
	}
	q.attached = true
	q.detached = make(chan struct{})
	return true
}

// Detach marks the queue as no longer serviced. Pending and future Calls
// fail.
func (q *Queue) Detach() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.attached {
		return
	}
	q.attached = false
	close(q.detached)
}

// Attached reports whether a goroutine services the queue.
func (q *Queue) Attached() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.attached
}

// Call runs task on the UI context and blocks until it has returned. A panic
// in task is returned as an error. It must not be called from the UI context
// itself.
func (q *Queue) Call(ctx context.Context, task func()) error {
	q.mu.Lock()
	attached, detached := q.attached, q.detached
	q.mu.Unlock()
	if !attached {
		return ErrNotRunning
	}

	req := Request{
		task: task,
		done: make(chan error, 1),
	}
	select {
	case q.requests <- req:
	case <-detached:
		return ErrStopped
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for ui context")
	}
	// Once accepted the task always runs to completion, so the result is
	// waited for regardless of ctx.
	return <-req.done
}

// Next returns the channel the owner receives tasks from. Run each received
// value with Run.
func (q *Queue) Next() <-chan Request {
	return q.requests
}

// Run executes a request received from Next.
func (q *Queue) Run(req Request) {
	req.done <- run(req.task)
}

// Drain runs every task that is already waiting, without blocking.
func (q *Queue) Drain() {
	for {
		select {
		case req := <-q.requests:
			q.Run(req)
		default:
			return
		}
	}
}

func run(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = errors.Wrap(rerr, "ui task panicked")
				return
			}
			err = errors.Errorf("ui task panicked: %v", r)
		}
	}()
	task()
	return nil
}
