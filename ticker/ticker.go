// Package ticker rotates a fixed sequence of status strings through a
// Display on a fixed interval while a run is outstanding.
package ticker

import (
	"sync"
	"time"
)

// DefaultInterval is how long each status stays on screen.
const DefaultInterval = 1500 * time.Millisecond

// DefaultStatuses is the rotation shown while a correlation run is pending.
var DefaultStatuses = []string{
	"Connecting to Deep Space Network...",
	"Calibrating Graviton Detectors...",
	"Querying Gamma-Ray Burst Catalog...",
	"Aggregating Neutrino Event Streams...",
	"Compiling Spacetime Coordinates...",
	"Running Correlation Matrix...",
	"Analyzing Probability Manifolds...",
	"Rendering Sky Map...",
}

// Display is where the ticker writes.
type Display interface {
	// MountStatus replaces whatever the display holds with a fresh status
	// element showing text.
	MountStatus(text string)

	// SetStatus changes the text of the mounted status element.
	SetStatus(text string)
}

// TickSource produces ticks every d until the returned stop func is called.
type TickSource func(d time.Duration) (ticks <-chan time.Time, stop func())

// RealTicks is the TickSource backed by time.Ticker.
func RealTicks(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Option configures a StatusTicker
type Option func(*StatusTicker)

// WithStatuses overrides the status rotation. An empty list is ignored.
func WithStatuses(statuses ...string) Option {
	return func(t *StatusTicker) {
		if len(statuses) > 0 {
			t.statuses = append([]string(nil), statuses...)
		}
	}
}

// WithInterval overrides the advance interval.
func WithInterval(d time.Duration) Option {
	return func(t *StatusTicker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTickSource swaps the clock, mainly for tests.
func WithTickSource(src TickSource) Option {
	return func(t *StatusTicker) {
		if src != nil {
			t.source = src
		}
	}
}

// StatusTicker is a cancelable periodic status rotator. At most one
// rotation is active per StatusTicker; Start cancels any previous one.
type StatusTicker struct {
	statuses []string
	interval time.Duration
	display  Display
	source   TickSource

	mu    sync.Mutex
	index int
	halt  chan struct{}
	done  chan struct{}
}

// New creates a ticker writing to display.
func New(display Display, opts ...Option) *StatusTicker {
	t := &StatusTicker{
		statuses: DefaultStatuses,
		interval: DefaultInterval,
		display:  display,
		source:   RealTicks,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start shows the first status immediately and advances cyclically every
// interval until Stop. Rotation always restarts from index 0.
func (t *StatusTicker) Start() {
	t.Stop()

	t.mu.Lock()
	t.index = 0
	t.display.MountStatus(t.statuses[0])
	ticks, stopTicks := t.source(t.interval)
	halt := make(chan struct{})
	done := make(chan struct{})
	t.halt, t.done = halt, done
	t.mu.Unlock()

	go t.loop(ticks, stopTicks, halt, done)
}

// Stop halts advancement. It is idempotent and safe on a ticker that was
// never started. Once Stop returns the display is not written again until
// the next Start.
func (t *StatusTicker) Stop() {
	t.mu.Lock()
	halt, done := t.halt, t.done
	t.halt, t.done = nil, nil
	t.mu.Unlock()

	if halt == nil {
		return
	}
	close(halt)
	<-done
}

// Running reports whether a rotation is active.
func (t *StatusTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.halt != nil
}

// Current returns the status string at the current rotation index.
func (t *StatusTicker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statuses[t.index]
}

func (t *StatusTicker) loop(ticks <-chan time.Time, stopTicks func(), halt, done chan struct{}) {
	defer close(done)
	defer stopTicks()
	for {
		select {
		case <-halt:
			return
		case <-ticks:
			t.advance(halt)
		}
	}
}

func (t *StatusTicker) advance(halt chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// a tick and a Stop can be ready together; Stop wins
	select {
	case <-halt:
		return
	default:
	}
	t.index = (t.index + 1) % len(t.statuses)
	t.display.SetStatus(t.statuses[t.index])
}
