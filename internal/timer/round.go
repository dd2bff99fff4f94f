// Package timer provides the per-question countdown of a trivia session.
//
// A Round counts down a fixed number of ticks and reports a single deadline.
// Every Arm and Disarm bumps a generation counter; callbacks carry the
// generation they were armed with so the owner can discard late deliveries.
package timer

import (
	"sync"
	"time"
)

const (
	DefaultDuration = 30
	DefaultInterval = time.Second
)

// Ticker is the subset of time.Ticker the countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

type Config struct {
	// Duration is the countdown length in ticks.
	Duration int
	Interval time.Duration

	NewTickerFunc TickerFunc

	// OnTick runs after every decrement, outside the timer lock.
	OnTick func(gen uint64, remaining int)
	// OnDeadline runs once when the countdown reaches zero, outside the timer lock.
	OnDeadline func(gen uint64)
}

// Round is a re-armable countdown.
type Round struct {
	duration   int
	interval   time.Duration
	newTicker  TickerFunc
	onTick     func(gen uint64, remaining int)
	onDeadline func(gen uint64)

	mu        sync.Mutex
	gen       uint64
	remaining int
	stop      chan struct{}
}

func New(c Config) *Round {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.NewTickerFunc == nil {
		c.NewTickerFunc = NewTicker
	}
	return &Round{
		duration:   c.Duration,
		interval:   c.Interval,
		newTicker:  c.NewTickerFunc,
		onTick:     c.OnTick,
		onDeadline: c.OnDeadline,
		remaining:  c.Duration,
	}
}

// Duration returns the configured countdown length in ticks.
func (r *Round) Duration() int {
	return r.duration
}

// Interval returns the wall-clock length of one tick.
func (r *Round) Interval() time.Duration {
	return r.interval
}

// Arm cancels any running countdown, resets the clock and starts a new one.
// It returns the generation the callbacks of this countdown will carry.
func (r *Round) Arm() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked()
	r.gen++
	r.remaining = r.duration

	stop := make(chan struct{})
	r.stop = stop
	go r.run(r.gen, r.newTicker(r.interval), stop)
	return r.gen
}

// Disarm cancels the running countdown. Remaining keeps its last value.
// It does not wait for the countdown goroutine, so it is safe to call from
// inside a callback.
func (r *Round) Disarm() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked()
	r.gen++
}

// Remaining returns the ticks left on the current countdown.
func (r *Round) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Current reports whether gen belongs to the live countdown.
func (r *Round) Current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil && r.gen == gen
}

func (r *Round) cancelLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *Round) run(gen uint64, t Ticker, stop <-chan struct{}) {
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
		}

		r.mu.Lock()
		if r.gen != gen {
			r.mu.Unlock()
			return
		}
		if r.remaining > 0 {
			r.remaining--
		}
		remaining := r.remaining
		expired := remaining == 0
		if expired {
			// finished on its own; nothing left for Disarm to close
			r.stop = nil
		}
		r.mu.Unlock()

		if r.onTick != nil {
			r.onTick(gen, remaining)
		}
		if expired {
			if r.onDeadline != nil {
				r.onDeadline(gen)
			}
			return
		}
	}
}
