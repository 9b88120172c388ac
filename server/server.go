// Package server exposes document generator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"richdoc/common"
	"richdoc/config"
	"richdoc/generate"
)

// Server is the HTTP rendering endpoint. Single generator is shared by all
// requests.
type Server struct {
	router chi.Router
	gen    *generate.Generator
	conf   config.ServerConfig
	// used when request does not specify one
	format common.OutputFmt
	rpt    *config.Report
	log    *zap.Logger

	reported atomic.Int64
}

// New creates and configures the HTTP handler. Report may be nil.
func New(gen *generate.Generator, conf config.ServerConfig, format common.OutputFmt, rpt *config.Report, log *zap.Logger) *Server {
	s := &Server{
		gen:    gen,
		conf:   conf,
		format: format,
		rpt:    rpt,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)

	s.router = r
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully waiting for active requests no longer than configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(s.log),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("Server started", zap.Stringer("address", ln.Addr()))

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.conf.ShutdownTimeout)
	defer cancel()

	s.log.Info("Server shutting down", zap.Duration("timeout", s.conf.ShutdownTimeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shutdown server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// ListenAndServe listens on configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.conf.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.conf.Listen, err)
	}
	return s.Serve(ctx, ln)
}
