//go:build js && wasm

// Package dom binds the run controller to the page through syscall/js.
// It expects the page to provide the elements named by the ID constants and
// does not check for their absence.
package dom

import (
	"html/template"
	"syscall/js"

	"github.com/panyam/skyscan/render"
	"github.com/panyam/skyscan/runner"
)

// Element ids of the page contract
const (
	FormID        = "run-form"
	ButtonID      = "run-button"
	ButtonTextSel = ".button-text"
	ResultsID     = "results-container"
	NoiseEventsID = "noise-events"
	TruePairsID   = "true-pairs"
	TimeWindowID  = "time-window"
	AngleSepID    = "angle-sep"
)

func byID(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

// Region is the results container.
type Region struct {
	el js.Value
}

func NewRegion() *Region {
	return &Region{el: byID(ResultsID)}
}

// MountStatus replaces the container content with a fresh status element.
func (r *Region) MountStatus(text string) {
	r.el.Set("innerHTML", string(render.StatusMarkup))
	r.SetStatus(text)
}

func (r *Region) SetStatus(text string) {
	status := byID(render.StatusElementID)
	if status.Truthy() {
		status.Set("textContent", text)
	}
}

func (r *Region) SetHTML(html template.HTML) {
	r.el.Set("innerHTML", string(html))
}

// Button is the submit control and its .button-text label.
type Button struct {
	el    js.Value
	label js.Value
}

func NewButton() *Button {
	el := byID(ButtonID)
	return &Button{el: el, label: el.Call("querySelector", ButtonTextSel)}
}

func (b *Button) SetEnabled(enabled bool) {
	b.el.Set("disabled", !enabled)
}

func (b *Button) Label() string {
	return b.label.Get("textContent").String()
}

func (b *Button) SetLabel(label string) {
	b.label.Set("textContent", label)
}

// Form reads the four inputs verbatim.
type Form struct {
	el js.Value
}

func NewForm() *Form {
	return &Form{el: byID(FormID)}
}

func (f *Form) Request() runner.RunRequest {
	return runner.RunRequest{
		NoiseEvents: inputValue(NoiseEventsID),
		TruePairs:   inputValue(TruePairsID),
		TimeWindow:  inputValue(TimeWindowID),
		AngleSep:    inputValue(AngleSepID),
	}
}

// OnSubmit registers fn for form submission with the default navigation
// suppressed. fn runs on its own goroutine: blocking inside a js callback
// would deadlock the fetch the controller is waiting on. The returned func
// removes the listener.
func (f *Form) OnSubmit(fn func()) (release func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		go fn()
		return nil
	})
	f.el.Call("addEventListener", "submit", cb)
	return func() {
		f.el.Call("removeEventListener", "submit", cb)
		cb.Release()
	}
}

func inputValue(id string) string {
	return byID(id).Get("value").String()
}

// Origin returns window.location.origin, used to build absolute endpoint
// URLs for net/http.
func Origin() string {
	return js.Global().Get("location").Get("origin").String()
}
