// Package server wires the catalog HTTP surface: content and menu endpoints
// behind the locale/onboarding gate, the onboarding completion API, health,
// and metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yigityalim/imperial-tobacco-web/internal/config"
	"github.com/yigityalim/imperial-tobacco-web/internal/eventlog"
	"github.com/yigityalim/imperial-tobacco-web/internal/gate"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/metrics"
)

// Options carries the server's collaborators.
type Options struct {
	Holder   *index.Holder
	Flags    gate.FlagStore
	Recorder *metrics.Recorder
	// Events is optional; nil disables the rebuild history endpoint's data.
	Events *eventlog.Store
}

// Server serves the catalog API.
type Server struct {
	cfg        *config.Config
	holder     *index.Holder
	flags      gate.FlagStore
	recorder   *metrics.Recorder
	events     *eventlog.Store
	gateConfig gate.Config

	httpServer *http.Server
}

// New constructs the server and its handler tree.
func New(cfg *config.Config, opts Options) *Server {
	flags := opts.Flags
	if flags == nil {
		flags = gate.CookieStore{Secure: cfg.Production()}
	}

	s := &Server{
		cfg:      cfg,
		holder:   opts.Holder,
		flags:    flags,
		recorder: opts.Recorder,
		events:   opts.Events,
		gateConfig: gate.Config{
			Locales:       cfg.Locale.Supported,
			DefaultLocale: cfg.Locale.Default,
			Bypass:        cfg.GateBypass(),
		},
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the full middleware-wrapped handler tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/rebuilds", s.handleRebuilds)
	mux.HandleFunc("POST /api/onboarding/complete", s.handleOnboardingComplete)
	mux.HandleFunc("DELETE /api/onboarding", s.handleOnboardingClear)
	if s.recorder != nil {
		mux.Handle("GET /metrics", s.recorder.Handler())
	}

	// Only the locale content routes sit behind the onboarding gate.
	mux.Handle("/", gate.Middleware(s.gateConfig, s.flags)(http.HandlerFunc(s.handleContent)))

	return chain(slog.Default(), s.recorder)(mux)
}

// Start runs the HTTP server until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.cfg.Server.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
