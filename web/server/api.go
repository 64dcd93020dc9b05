//go:build !wasm
// +build !wasm

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"

	"github.com/felixge/httpsnoop"
	"github.com/panyam/skyscan/runner"
)

// PlotsPrefix is where the compute service publishes plot images.
const PlotsPrefix = "/static/plots/"

// computeProxy forwards to the compute service. Failures to reach it are
// answered with the service's own error shape so the page shows them.
func (s *Server) computeProxy() http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(s.compute)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Error("compute proxy %s %s: %v", r.Method, r.URL.Path, err)
			writeJSON(w, http.StatusBadGateway, runner.ErrorPayload{
				Error: "compute service unreachable: " + err.Error(),
			})
		},
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info("%s %s -> %d (%d bytes, %v)", r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
