package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultOutboxSize    = 64
	defaultOutboxTimeout = 5 * time.Second
)

type outboxJob struct {
	name string
	run  func(ctx context.Context) error
}

// outbox runs collaborator calls one at a time in submission order.
// Pushing never blocks: a full queue drops the job.
type outbox struct {
	log     *zap.Logger
	timeout time.Duration
	jobs    chan outboxJob
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

func newOutbox(log *zap.Logger, size int, timeout time.Duration) *outbox {
	if size <= 0 {
		size = defaultOutboxSize
	}
	if timeout <= 0 {
		timeout = defaultOutboxTimeout
	}
	o := &outbox{
		log:     log,
		timeout: timeout,
		jobs:    make(chan outboxJob, size),
		done:    make(chan struct{}),
	}
	go o.work()
	return o
}

func (o *outbox) push(name string, run func(ctx context.Context) error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		o.log.Debug("outbox: closed, dropping job", zap.String("job", name))
		return
	}
	select {
	case o.jobs <- outboxJob{name: name, run: run}:
	default:
		o.log.Warn("outbox: queue full, dropping job", zap.String("job", name))
	}
}

// close stops accepting jobs and waits up to wait for the queue to drain.
// It reports whether the queue drained in time.
func (o *outbox) close(wait time.Duration) bool {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.jobs)
	}
	o.mu.Unlock()

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-o.done:
		return true
	case <-t.C:
		return false
	}
}

func (o *outbox) work() {
	defer close(o.done)
	for job := range o.jobs {
		o.exec(job)
	}
}

func (o *outbox) exec(job outboxJob) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("outbox: job panic",
				zap.String("job", job.name),
				zap.Error(fmt.Errorf("%v, stack: %s", r, debug.Stack())),
			)
		}
		cancel()
	}()

	if err := job.run(ctx); err != nil {
		o.log.Warn("outbox: collaborator call failed",
			zap.String("job", job.name),
			zap.Error(err),
		)
	}
}
