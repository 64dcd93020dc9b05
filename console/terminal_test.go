package console

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/render"
	"github.com/panyam/skyscan/runner"
	"github.com/panyam/skyscan/ticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDispatcher struct {
	outcome runner.Outcome
	got     runner.RunRequest
}

func (s *stubDispatcher) Dispatch(_ context.Context, req runner.RunRequest) runner.Outcome {
	s.got = req
	return s.outcome
}

func TestRegionPrintsStatuses(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegion(&buf)

	r.MountStatus("Connecting to Deep Space Network...")
	r.SetStatus("Rendering Sky Map...")

	assert.Contains(t, buf.String(), "Connecting to Deep Space Network...\n")
	assert.Contains(t, buf.String(), "Rendering Sky Map...\n")
	assert.Equal(t, 2, r.Updates())

	r.SetHTML("<p>done</p>")
	assert.Equal(t, "<p>done</p>", string(r.HTML()))
}

func TestTerminalRunThroughController(t *testing.T) {
	var buf bytes.Buffer
	region := NewRegion(&buf)
	button := NewButton("INITIATE SCAN")
	form := &Form{Req: runner.RunRequest{NoiseEvents: "10", TruePairs: "1", TimeWindow: "0.5", AngleSep: "2"}}
	d := &stubDispatcher{outcome: runner.Succeeded(200, &runner.RunResult{AllSkyPlotURL: "sky.png"})}

	c := runner.NewController(form, button, region, d, render.New())
	c.SetTicker(ticker.New(region, ticker.WithInterval(time.Hour)))
	c.SetLogger(applog.Nop{})

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.OK())

	assert.Equal(t, form.Req, d.got)
	assert.Contains(t, buf.String(), ticker.DefaultStatuses[0])
	assert.Contains(t, string(region.HTML()), "No significant cross-messenger correlations")
	assert.True(t, button.Enabled())
	assert.Equal(t, "INITIATE SCAN", button.Label())
}
