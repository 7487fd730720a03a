// Package worker runs units of work on a fixed-size pool and hands back a
// Handle per dispatched task so callers can poll or wait for the outcome.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Task is one unit of work. The value it returns is kept on its Handle.
type Task func(ctx context.Context) (any, error)

type Pool struct {
	tasks     chan func()
	wg        sync.WaitGroup
	sending   sync.WaitGroup
	once      sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	retention time.Duration
	logger    *zap.Logger

	mu      sync.RWMutex
	stopped bool
	handles map[string]*Handle
}

type Option func(*Pool)

// WithRetention sets how long finished handles stay available to Lookup.
func WithRetention(d time.Duration) Option {
	return func(p *Pool) { p.retention = d }
}

// NewPool starts size workers. If size is zero or negative, GOMAXPROCS
// workers are used.
func NewPool(size int, logger *zap.Logger, opts ...Option) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
		if size <= 0 {
			size = 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:     make(chan func(), size*2),
		ctx:       ctx,
		cancel:    cancel,
		retention: time.Hour,
		logger:    logger,
		handles:   make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.tasks {
		if fn != nil {
			fn()
		}
	}
}

// Dispatch queues task under a descriptive name and returns its handle
// right away. It blocks only while the queue is full. After Stop the
// returned handle is already failed with ErrPoolStopped.
func (p *Pool) Dispatch(name string, task Task) *Handle {
	h := newHandle(uuid.NewString(), name)

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		h.finish(nil, ErrPoolStopped)
		return h
	}
	p.pruneLocked(time.Now())
	p.handles[h.id] = h
	p.sending.Add(1)
	p.mu.Unlock()

	// no lock is held while the queue is full, so Lookup stays responsive
	defer p.sending.Done()
	p.tasks <- func() { p.run(h, task) }

	return h
}

func (p *Pool) run(h *Handle, task Task) {
	h.start()

	var (
		result any
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v", h.name, r)
			}
		}()
		result, err = task(p.ctx)
	}()

	h.finish(result, err)

	if err != nil {
		p.logger.Error("task failed",
			zap.String("task_id", h.id),
			zap.String("task", h.name),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("task finished", zap.String("task_id", h.id), zap.String("task", h.name))
}

// Lookup returns a handle dispatched within the retention window.
func (p *Pool) Lookup(id string) (*Handle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handles[id]
	return h, ok
}

func (p *Pool) pruneLocked(now time.Time) {
	for id, h := range p.handles {
		if fin, ok := h.finishedAt(); ok && now.Sub(fin) > p.retention {
			delete(p.handles, id)
		}
	}
}

// Stop rejects new work, drains the queue, waits for running tasks and
// then cancels the context handed to tasks.
func (p *Pool) Stop() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		// senders blocked on a full queue still get their task in
		p.sending.Wait()
		close(p.tasks)

		p.wg.Wait()
		p.cancel()
	})
}
