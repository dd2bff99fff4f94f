// Package event is an in-process bus carrying engine events to observers.
package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultWorkers   = 8
	defaultQueueSize = 1024
	defaultTimeout   = 10 * time.Second
)

type Event interface {
	Name() string
}

type Handler func(ctx context.Context, e Event) error

type Option func(*Bus)

// WithWorkers sets how many handlers run at once.
func WithWorkers(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithQueueSize bounds the deliveries waiting for a worker.
func WithQueueSize(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

type delivery struct {
	ctx context.Context
	h   Handler
	e   Event
}

// Bus queues every (handler, event) pair and runs it on a fixed worker set.
// Publish never blocks: a full queue drops the delivery with a warning.
type Bus struct {
	log       *zap.Logger
	workers   int
	queueSize int
	queue     chan delivery
	wg        sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	handlers map[string][]Handler
}

// NewBus starts the workers. Callers should Stop the bus on shutdown.
func NewBus(log *zap.Logger, opts ...Option) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bus{
		log:       log,
		workers:   defaultWorkers,
		queueSize: defaultQueueSize,
		handlers:  make(map[string][]Handler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.queue = make(chan delivery, b.queueSize)

	b.wg.Add(b.workers)
	for i := 0; i < b.workers; i++ {
		go b.work()
	}
	return b
}

// Subscribe registers h for events named name.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[name] = append(b.handlers[name], h)
}

// Publish queues e for every handler subscribed to its name. Events published
// after Stop are discarded.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		return
	}
	for _, h := range b.handlers[e.Name()] {
		select {
		case b.queue <- delivery{ctx: context.WithoutCancel(ctx), h: h, e: e}:
		default:
			b.log.Warn("event: queue full, dropping delivery", zap.String("event", e.Name()))
		}
	}
}

// Stop runs the queued deliveries to completion and stops the workers.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.stopped {
		b.stopped = true
		close(b.queue)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Bus) work() {
	defer b.wg.Done()
	for d := range b.queue {
		b.handle(d)
	}
}

func (b *Bus) handle(d delivery) {
	ctx, cancel := context.WithTimeout(d.ctx, defaultTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event: handler panic",
				zap.String("event", d.e.Name()),
				zap.Error(fmt.Errorf("%v, stack: %s", r, debug.Stack())),
			)
		}
	}()

	if err := d.h(ctx, d.e); err != nil {
		b.log.Error("event: handle event failed",
			zap.String("event", d.e.Name()),
			zap.Error(err),
		)
	}
}
