// Package gateway exposes the webhook HTTP server: the ingress for
// WhatsApp Cloud API notifications plus a few operational endpoints.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jdmarket/colibri/internal/config"
	"github.com/jdmarket/colibri/internal/engine"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/jdmarket/colibri/internal/session"
	"github.com/jdmarket/colibri/internal/sideband"
	"github.com/jdmarket/colibri/internal/whatsapp"
)

// Server is the Colibri webhook HTTP server.
type Server struct {
	cfg        config.Config
	log        *logging.Logger
	engine     *engine.Engine
	messenger  whatsapp.Messenger
	sessions   session.Store
	recorder   *sideband.Recorder
	httpServer *http.Server
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithSessions exposes the session store on the admin endpoints.
func WithSessions(s session.Store) ServerOption {
	return func(srv *Server) { srv.sessions = s }
}

// WithRecorder exposes the conversation transcript on the admin endpoints.
func WithRecorder(r *sideband.Recorder) ServerOption {
	return func(srv *Server) { srv.recorder = r }
}

// New creates a webhook server around the dispatch engine. The messenger
// is used directly by the manual-send endpoints.
func New(cfg config.Config, eng *engine.Engine, m whatsapp.Messenger, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log.Sub("gateway"),
		engine:    eng,
		messenger: m,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.Host
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for webhook calls. It blocks until the context
// is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      withMiddleware(mux, s.log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	s.log.Info().Str("addr", addr).Msg("webhook server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("shutdown failed")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler returns the configured HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return withMiddleware(mux, s.log)
}
