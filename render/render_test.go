package render

import (
	"encoding/json"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/panyam/skyscan/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gtassert "gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var fixedNow = time.UnixMilli(1700000000123)

func newTestRenderer() *HTMLRenderer {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func decodeResult(t *testing.T, body string) *runner.RunResult {
	t.Helper()
	var res runner.RunResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	return &res
}

const threeCorrelations = `{
  "success": true,
  "all_sky_plot_url": "static/plots/all_sky_map.png",
  "correlations": [
    {"id": 0, "probability": "97.50%", "event1_id": "GW-0001", "event1_source": "LIGO",
     "event2_id": "GRB-0042", "event2_source": "Fermi", "time_sep_hrs": "1.25", "ang_sep_deg": "0.412",
     "detail_plot_url": "static/plots/correlation_detail_0.png"},
    {"id": 1, "probability": 0.81, "event1_id": "NU-0007", "event1_source": "IceCube",
     "event2_id": "GRB-0100", "event2_source": "Swift", "time_sep_hrs": 3.5, "ang_sep_deg": 0.9,
     "detail_plot_url": "static/plots/correlation_detail_1.png"},
    {"id": 2, "probability": "40.00%", "event1_id": 17, "event1_source": "LIGO",
     "event2_id": 23, "event2_source": "IceCube", "time_sep_hrs": "12.00", "ang_sep_deg": "0.999",
     "detail_plot_url": "static/plots/correlation_detail_2.png"}
  ]
}`

func TestRenderThreeCorrelationsInOrder(t *testing.T) {
	html, err := newTestRenderer().RenderResult(decodeResult(t, threeCorrelations))
	require.NoError(t, err)
	out := string(html)

	assert.Equal(t, 3, strings.Count(out, `class="correlation-card"`))
	assert.Contains(t, out, "CORRELATION SIGNALS DETECTED: 3")
	assert.NotContains(t, out, "No significant cross-messenger correlations")

	// input order is preserved
	first := strings.Index(out, "Signal Pair #1")
	second := strings.Index(out, "Signal Pair #2")
	third := strings.Index(out, "Signal Pair #3")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	d0 := strings.Index(out, "--animation-delay: 0.5s")
	d1 := strings.Index(out, "--animation-delay: 0.6s")
	d2 := strings.Index(out, "--animation-delay: 0.7s")
	require.True(t, d0 >= 0 && d1 >= 0 && d2 >= 0, out)
	assert.Less(t, d0, d1)
	assert.Less(t, d1, d2)
}

func TestRenderCardContents(t *testing.T) {
	html, err := newTestRenderer().RenderResult(decodeResult(t, threeCorrelations))
	require.NoError(t, err)
	out := string(html)

	gtassert.Assert(t, is.Contains(out, "Signal Pair #1 // Confidence: 97.50%"))
	gtassert.Assert(t, is.Contains(out, "<b>Source A:</b> GW-0001 (LIGO)"))
	gtassert.Assert(t, is.Contains(out, "<b>Source B:</b> GRB-0042 (Fermi)"))
	gtassert.Assert(t, is.Contains(out, "<b>Δt:</b> 1.25 hrs | <b>Δθ:</b> 0.412°"))

	// numeric fields render verbatim
	gtassert.Assert(t, is.Contains(out, "Signal Pair #2 // Confidence: 0.81"))
	gtassert.Assert(t, is.Contains(out, "<b>Δt:</b> 3.5 hrs | <b>Δθ:</b> 0.9°"))
	gtassert.Assert(t, is.Contains(out, "<b>Source A:</b> 17 (LIGO)"))
}

func TestRenderCacheBustsEveryImage(t *testing.T) {
	html, err := newTestRenderer().RenderResult(decodeResult(t, threeCorrelations))
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `src="static/plots/all_sky_map.png?t=1700000000123"`)
	for _, name := range []string{"correlation_detail_0", "correlation_detail_1", "correlation_detail_2"} {
		assert.Contains(t, out, `src="static/plots/`+name+`.png?t=1700000000123"`)
	}
	assert.Equal(t, 4, strings.Count(out, "?t=1700000000123"))
}

func TestRenderCacheBusterFollowsClock(t *testing.T) {
	res := decodeResult(t, `{"all_sky_plot_url": "sky.png", "correlations": []}`)

	a, err := New(WithClock(func() time.Time { return time.UnixMilli(1000) })).RenderResult(res)
	require.NoError(t, err)
	b, err := New(WithClock(func() time.Time { return time.UnixMilli(2000) })).RenderResult(res)
	require.NoError(t, err)

	assert.Contains(t, string(a), "sky.png?t=1000")
	assert.Contains(t, string(b), "sky.png?t=2000")
}

func TestRenderNoCorrelations(t *testing.T) {
	html, err := newTestRenderer().RenderResult(decodeResult(t, `{"all_sky_plot_url": "sky.png", "correlations": []}`))
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, "CORRELATION SIGNALS DETECTED: 0")
	assert.Contains(t, out, "No significant cross-messenger correlations found in data stream.")
	assert.Zero(t, strings.Count(out, "correlation-card"))
	assert.Contains(t, out, "ALL-SKY DATA STREAM")
}

func TestRenderSkyPanelComesFirst(t *testing.T) {
	html, err := newTestRenderer().RenderResult(decodeResult(t, threeCorrelations))
	require.NoError(t, err)
	out := string(html)
	assert.Less(t, strings.Index(out, "ALL-SKY DATA STREAM"), strings.Index(out, "CORRELATION SIGNALS DETECTED"))
}

func TestRenderResultNil(t *testing.T) {
	_, err := newTestRenderer().RenderResult(nil)
	assert.Error(t, err)
}

func TestRenderErrorEscapesMessage(t *testing.T) {
	out := string(newTestRenderer().RenderError(`bad <window> & "angle"`))

	assert.Contains(t, out, `class="status-message error-message"`)
	assert.Contains(t, out, "// FATAL ERROR //")
	assert.Contains(t, out, "bad &lt;window&gt; &amp; ")
	assert.NotContains(t, out, "<window>")
}

func TestAnimationDelay(t *testing.T) {
	assert.Equal(t, "0.5s", AnimationDelay(0))
	assert.Equal(t, "0.6s", AnimationDelay(1))
	assert.Equal(t, "0.7s", AnimationDelay(2))
	assert.Equal(t, "1.5s", AnimationDelay(10))
}

func TestCacheBust(t *testing.T) {
	assert.Equal(t, "a/b.png?t=42", CacheBust("a/b.png", 42))
}

func TestPageWrapsFragment(t *testing.T) {
	page, err := Page("Scan", "http://compute.local:5000/", template.HTML(`<p class="x">hi</p>`))
	require.NoError(t, err)
	out := string(page)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<base href="http://compute.local:5000/">`)
	assert.Contains(t, out, `<div id="results-container"><p class="x">hi</p></div>`)

	page, err = Page("Scan", "", "")
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<base")
}
