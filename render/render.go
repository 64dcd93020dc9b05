// Package render produces the markup written into the results region.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/skyscan/runner"
)

const (
	// StatusElementID identifies the ticker's text node inside the region.
	StatusElementID = "status-text"

	// BaseAnimationDelay and AnimationDelayStep stagger correlation cards.
	BaseAnimationDelay = 500 * time.Millisecond
	AnimationDelayStep = 100 * time.Millisecond
)

// StatusMarkup is the fresh, empty status element mounted by the ticker.
const StatusMarkup template.HTML = `<div class="status-message" id="` + StatusElementID + `"></div>`

const resultTemplate = `{{define "result"}}<div class="result-section">
<h2 class="panel-title">ALL-SKY DATA STREAM</h2>
<img src="{{.SkyPlotURL}}" alt="All-sky map of events">
</div>
<div class="result-section">
<h2 class="panel-title">CORRELATION SIGNALS DETECTED: {{.Count}}</h2>
{{- range .Cards}}
<div class="correlation-card" style="{{.Style}}">
<h3>Signal Pair #{{.Number}} // Confidence: {{.Confidence}}</h3>
<p>
<b>Source A:</b> {{.Event1ID}} ({{.Event1Source}})<br>
<b>Source B:</b> {{.Event2ID}} ({{.Event2Source}})<br>
<b>Δt:</b> {{.TimeSepHrs}} hrs | <b>Δθ:</b> {{.AngSepDeg}}°
</p>
<img src="{{.PlotURL}}" alt="Correlation detail plot">
</div>
{{- else}}
<p class="status-message">No significant cross-messenger correlations found in data stream.</p>
{{- end}}
</div>{{end}}
{{define "error"}}<div class="status-message error-message">
<p>// FATAL ERROR //</p>
<p>{{.}}</p>
</div>{{end}}`

var templates = template.Must(template.New("render").Parse(resultTemplate))

type resultView struct {
	SkyPlotURL string
	Count      int
	Cards      []cardView
}

type cardView struct {
	Number       int
	Confidence   string
	Event1ID     string
	Event1Source string
	Event2ID     string
	Event2Source string
	TimeSepHrs   string
	AngSepDeg    string
	PlotURL      string
	Style        template.CSS
}

// Option configures an HTMLRenderer
type Option func(*HTMLRenderer)

// WithClock fixes the time used for cache busting.
func WithClock(now func() time.Time) Option {
	return func(r *HTMLRenderer) {
		if now != nil {
			r.now = now
		}
	}
}

// HTMLRenderer renders results and error panels as HTML fragments. It
// satisfies runner.Renderer.
type HTMLRenderer struct {
	now func() time.Time
}

// New creates a renderer
func New(opts ...Option) *HTMLRenderer {
	r := &HTMLRenderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderResult builds the sky map panel followed by the correlation
// section. Cards keep the service's ordering. Every image URL gets the
// same render-time cache buster.
func (r *HTMLRenderer) RenderResult(result *runner.RunResult) (template.HTML, error) {
	if result == nil {
		return "", fmt.Errorf("no result to render")
	}
	stamp := r.now().UnixMilli()

	cards := gfn.Map(result.Correlations, func(c runner.Correlation) cardView {
		return cardView{
			Number:       c.ID + 1,
			Confidence:   c.Probability.String(),
			Event1ID:     c.Event1ID.String(),
			Event1Source: c.Event1Source,
			Event2ID:     c.Event2ID.String(),
			Event2Source: c.Event2Source,
			TimeSepHrs:   c.TimeSepHrs.String(),
			AngSepDeg:    c.AngSepDeg.String(),
			PlotURL:      CacheBust(c.DetailPlotURL, stamp),
		}
	})
	for i := range cards {
		cards[i].Style = template.CSS("--animation-delay: " + AnimationDelay(i))
	}

	view := resultView{
		SkyPlotURL: CacheBust(result.AllSkyPlotURL, stamp),
		Count:      len(cards),
		Cards:      cards,
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "result", view); err != nil {
		return "", fmt.Errorf("rendering result: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderError builds the fixed-format error panel. The message is escaped.
func (r *HTMLRenderer) RenderError(message string) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "error", message); err != nil {
		// the error template has no failure modes beyond a broken writer
		return template.HTML(template.HTMLEscapeString(message))
	}
	return template.HTML(buf.String())
}

// CacheBust appends the render timestamp so browsers refetch images whose
// URLs repeat across runs.
func CacheBust(url string, epochMillis int64) string {
	return url + "?t=" + strconv.FormatInt(epochMillis, 10)
}

// AnimationDelay is the CSS delay for the card at position i.
func AnimationDelay(i int) string {
	d := BaseAnimationDelay + time.Duration(i)*AnimationDelayStep
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
