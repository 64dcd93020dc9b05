//go:build !wasm
// +build !wasm

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/config"
	"github.com/panyam/skyscan/runner"
	"github.com/panyam/templar"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server hosts the run page, its static assets and the wasm module, and
// forwards runs and plot images to the compute service.
type Server struct {
	Address string

	config    *config.Config
	compute   *url.URL
	templates *templar.TemplateGroup
	logger    applog.Logger
	http      *http.Server
	stopped   chan struct{}
}

// NewServer creates a server for cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	compute, err := url.Parse(cfg.ComputeURL)
	if err != nil || compute.Scheme == "" || compute.Host == "" {
		return nil, fmt.Errorf("invalid compute url %q", cfg.ComputeURL)
	}
	return &Server{
		Address:   cfg.WebAddr,
		config:    cfg,
		compute:   compute,
		templates: SetupTemplates(cfg.TemplatesDir),
		logger:    applog.Default(),
	}, nil
}

// SetLogger replaces the request logger
func (s *Server) SetLogger(l applog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Handler returns a configured HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	proxy := s.computeProxy()

	r.Handle(runner.RunPath, proxy).Methods(http.MethodPost)
	r.PathPrefix(PlotsPrefix).Handler(proxy).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.config.StaticDir))))
	r.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)

	return s.logRequests(r)
}

// Start listens on Address and serves until stopChan fires. Serve errors
// after a successful start are sent on srvErr.
func (s *Server) Start(ctx context.Context, srvErr chan error, stopChan chan bool) error {
	l, err := net.Listen("tcp", s.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Address, err)
	}
	s.Address = l.Addr().String()
	s.http = &http.Server{
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	s.stopped = make(chan struct{})

	applog.Start("Serving skyscan on http://%s (compute: %s)", s.Address, s.compute)

	go func() {
		if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server failed to serve: %v", err)
			srvErr <- err
		}
	}()

	go func() {
		select {
		case <-stopChan:
		case <-ctx.Done():
		}
		defer close(s.stopped)
		applog.Stop("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("web server shutdown error: %v", err)
		}
	}()

	return nil
}

// Wait blocks until a started server has shut down.
func (s *Server) Wait() {
	if s.stopped != nil {
		<-s.stopped
	}
}
