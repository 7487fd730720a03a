package worker

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Handle tracks one dispatched task.
type Handle struct {
	id   string
	name string
	done chan struct{}

	mu       sync.Mutex
	status   Status
	result   any
	err      error
	finished time.Time
}

func newHandle(id, name string) *Handle {
	return &Handle{
		id:     id,
		name:   name,
		done:   make(chan struct{}),
		status: StatusPending,
	}
}

func (h *Handle) ID() string   { return h.id }
func (h *Handle) Name() string { return h.name }

func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Done is closed once the task has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome; ok is false while the task is still pending
// or running.
func (h *Handle) Result() (result any, err error, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != StatusSucceeded && h.status != StatusFailed {
		return nil, nil, false
	}
	return h.result, h.err, true
}

// Wait blocks until the task finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) start() {
	h.mu.Lock()
	h.status = StatusRunning
	h.mu.Unlock()
}

func (h *Handle) finish(result any, err error) {
	h.mu.Lock()
	h.result = result
	h.err = err
	h.status = StatusSucceeded
	if err != nil {
		h.status = StatusFailed
	}
	h.finished = time.Now()
	h.mu.Unlock()

	close(h.done)
}

func (h *Handle) finishedAt() (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finished, !h.finished.IsZero()
}
