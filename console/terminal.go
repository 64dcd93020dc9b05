package console

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/panyam/skyscan/runner"
)

var (
	statusColor = color.New(color.FgCyan)
	markerColor = color.New(color.FgHiBlack)
)

// Region is a terminal results region. Ticker statuses stream to out as
// lines; rendered fragments are kept for the caller to save.
type Region struct {
	out io.Writer

	mu      sync.Mutex
	status  string
	html    template.HTML
	updates int
}

// NewRegion creates a region printing status lines to out
func NewRegion(out io.Writer) *Region {
	return &Region{out: out}
}

func (r *Region) MountStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.html = ""
	r.printStatus(text)
}

func (r *Region) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printStatus(text)
}

func (r *Region) printStatus(text string) {
	r.status = text
	r.updates++
	fmt.Fprintf(r.out, "%s %s\n", markerColor.Sprint("»"), statusColor.Sprint(text))
}

func (r *Region) SetHTML(html template.HTML) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = ""
	r.html = html
}

// HTML returns the last fragment written by the controller.
func (r *Region) HTML() template.HTML {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html
}

// Updates counts status lines printed so far.
func (r *Region) Updates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

// Button mirrors a submit control for runs driven from the terminal.
type Button struct {
	mu      sync.Mutex
	enabled bool
	label   string
}

// NewButton creates an enabled button
func NewButton(label string) *Button {
	return &Button{enabled: true, label: label}
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
}

// Form hands a fixed request to the controller.
type Form struct {
	Req runner.RunRequest
}

func (f *Form) Request() runner.RunRequest {
	return f.Req
}
