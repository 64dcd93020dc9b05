package runner

import (
	"context"
	"html/template"
	"sync"

	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/ticker"
)

// BusyLabel is shown on the submit control while a run is outstanding.
const BusyLabel = "PROCESSING..."

// State of the run lifecycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Region is the single results container. The ticker writes to it through
// the embedded Display while a run is outstanding; the controller replaces
// it wholesale with rendered results or an error panel afterwards.
type Region interface {
	ticker.Display
	SetHTML(html template.HTML)
}

// Button is the submit control.
type Button interface {
	SetEnabled(enabled bool)
	Label() string
	SetLabel(label string)
}

// Form reads the run parameters at submit time.
type Form interface {
	Request() RunRequest
}

// Ticker is the status indicator shown during a run.
type Ticker interface {
	Start()
	Stop()
}

// Renderer turns outcomes into region markup.
type Renderer interface {
	RenderResult(result *RunResult) (template.HTML, error)
	RenderError(message string) template.HTML
}

// Callbacks for the embedding environment
type Callbacks struct {
	OnStateChange func(from, to State)
	OnOutcome     func(outcome Outcome)
}

// Controller owns the submit lifecycle:
// Idle -> Submitting -> (Succeeded | Failed) -> Idle.
type Controller struct {
	form       Form
	button     Button
	region     Region
	dispatcher Dispatcher
	renderer   Renderer
	ticker     Ticker
	logger     applog.Logger
	callbacks  *Callbacks

	mu    sync.Mutex
	state State
}

// NewController wires a controller. The status ticker defaults to a
// ticker.StatusTicker writing into region.
func NewController(form Form, button Button, region Region, dispatcher Dispatcher, renderer Renderer) *Controller {
	return &Controller{
		form:       form,
		button:     button,
		region:     region,
		dispatcher: dispatcher,
		renderer:   renderer,
		ticker:     ticker.New(region),
		logger:     applog.Default(),
		callbacks:  &Callbacks{},
	}
}

// SetTicker replaces the status ticker
func (c *Controller) SetTicker(t Ticker) {
	if t != nil {
		c.ticker = t
	}
}

// SetLogger replaces the diagnostic logger
func (c *Controller) SetLogger(l applog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetCallbacks sets the callback functions for external environment integration
func (c *Controller) SetCallbacks(callbacks *Callbacks) {
	if callbacks != nil {
		c.callbacks = callbacks
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one full cycle and blocks until the region shows the result
// or an error panel and the button is usable again. It returns ErrBusy
// without side effects if a run is already in flight.
func (c *Controller) Submit(ctx context.Context) (outcome Outcome, err error) {
	if !c.transition(StateIdle, StateSubmitting) {
		return Outcome{}, ErrBusy
	}

	label := c.button.Label()
	c.button.SetEnabled(false)
	c.button.SetLabel(BusyLabel)

	tickerStopped := false
	defer func() {
		if r := recover(); r != nil {
			if tickerStopped {
				outcome = RenderFailed(outcome.Status, r)
			} else {
				c.ticker.Stop()
				outcome = DispatchFailed(r)
			}
			c.fail(outcome)
		}
		c.button.SetEnabled(true)
		c.button.SetLabel(label)
		if outcome.OK() {
			c.setState(StateSucceeded)
		} else {
			c.setState(StateFailed)
		}
		if c.callbacks.OnOutcome != nil {
			c.callbacks.OnOutcome(outcome)
		}
		c.setState(StateIdle)
	}()

	c.ticker.Start()
	req := c.form.Request()
	c.logger.Debug("dispatching run: noise=%q pairs=%q window=%q angle=%q",
		req.NoiseEvents, req.TruePairs, req.TimeWindow, req.AngleSep)

	outcome = c.dispatcher.Dispatch(ctx, req)
	c.ticker.Stop()
	tickerStopped = true

	if !outcome.OK() {
		c.fail(outcome)
		return outcome, nil
	}

	html, rerr := c.renderer.RenderResult(outcome.Result)
	if rerr != nil {
		outcome = RenderFailed(outcome.Status, rerr)
		c.fail(outcome)
		return outcome, nil
	}
	c.region.SetHTML(html)
	c.logger.Info("run complete: %d correlation(s)", len(outcome.Result.Correlations))
	return outcome, nil
}

func (c *Controller) fail(outcome Outcome) {
	c.logger.Error("run failed: kind=%s status=%d message=%s", outcome.Kind, outcome.Status, outcome.Message)
	c.region.SetHTML(c.renderer.RenderError(outcome.Message))
}

func (c *Controller) transition(from, to State) bool {
	c.mu.Lock()
	if c.state != from {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()

	if c.callbacks.OnStateChange != nil {
		c.callbacks.OnStateChange(from, to)
	}
	return true
}

func (c *Controller) setState(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()

	if c.callbacks.OnStateChange != nil && from != to {
		c.callbacks.OnStateChange(from, to)
	}
}
