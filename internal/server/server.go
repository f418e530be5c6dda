// Package server exposes parsing over HTTP. One POST /parse endpoint
// mirrors the CLI: it accepts form or JSON bodies and responds with
// the bare entity array.
package server

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/pipeline"
	"github.com/QtravelPL/duckling/internal/worker"
)

// Server serves the parse API for one pipeline.
type Server struct {
	pipeline *pipeline.Pipeline
	cfg      model.ServerConfig
	limiter  *worker.KeyLimiter
	logger   *zap.SugaredLogger
}

// New creates a server around an initialized pipeline.
func New(p *pipeline.Pipeline, cfg model.ServerConfig) *Server {
	return &Server{
		pipeline: p,
		cfg:      cfg,
		limiter:  worker.NewKeyLimiter(cfg.RatePerSecond, cfg.RateBurst),
		logger:   zap.NewNop().Sugar(),
	}
}

// SetLogger replaces the no-op logger.
func (s *Server) SetLogger(logger *zap.SugaredLogger) {
	if logger != nil {
		s.logger = logger
	}
}

// Handler returns the route table. Exposed so tests can drive the
// server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/parse", s.handleParse)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails, then drains in-flight requests within ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Infow("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.logger.Infow("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
