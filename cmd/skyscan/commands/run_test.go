package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/panyam/skyscan/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScanWritesPage(t *testing.T) {
	var got runner.RunRequest
	compute := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"all_sky_plot_url":"static/plots/all_sky_map.png","correlations":[
			{"id":0,"probability":"75.00%","event1_id":"GW-1","event1_source":"LIGO","event2_id":"NU-4","event2_source":"IceCube",
			 "time_sep_hrs":"4.00","ang_sep_deg":"0.300","detail_plot_url":"static/plots/correlation_detail_0.png"}]}`)
	}))
	defer compute.Close()

	var status bytes.Buffer
	out := filepath.Join(t.TempDir(), "scan.html")
	req := runner.RunRequest{NoiseEvents: "100", TruePairs: "1", TimeWindow: "2", AngleSep: "0.5"}

	outcome, err := runScan(context.Background(), &status, compute.URL+"/run", req, out)
	require.NoError(t, err)
	require.True(t, outcome.OK(), outcome.Message)
	assert.Equal(t, req, got)
	assert.Contains(t, status.String(), "Connecting to Deep Space Network...")

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), `<base href="`+compute.URL+`/">`)
	assert.Contains(t, string(page), "Signal Pair #1 // Confidence: 75.00%")
}

func TestRunScanFailureStillWritesPanel(t *testing.T) {
	compute := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"bad window"}`)
	}))
	defer compute.Close()

	out := filepath.Join(t.TempDir(), "scan.html")
	outcome, err := runScan(context.Background(), io.Discard, compute.URL+"/run", runner.RunRequest{}, out)
	require.NoError(t, err)

	assert.Error(t, outcome.Err())
	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "// FATAL ERROR //")
	assert.Contains(t, string(page), "bad window")
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://compute:5000/", baseURL("http://compute:5000/run"))
	assert.Equal(t, "http://compute:5000/api/", baseURL("http://compute:5000/api/run"))
	assert.Equal(t, "", baseURL("/run"))
}

func TestRunCommandFailureIsReportedOnce(t *testing.T) {
	compute := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error":"bad window"}`)
	}))
	defer compute.Close()

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"run", "--endpoint", compute.URL + "/run", "--out", ""})
	t.Cleanup(func() {
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		runEndpoint = ""
	})

	err := rootCmd.Execute()
	var rerr *runner.RunError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "bad window", rerr.Message)
	assert.NotContains(t, stderr.String(), "Error:")
}
