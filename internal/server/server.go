package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/vyrodovalexey/avarouter/internal/config"
	"github.com/vyrodovalexey/avarouter/internal/middleware"
	"github.com/vyrodovalexey/avarouter/internal/observability"
	"github.com/vyrodovalexey/avarouter/internal/router"
	"github.com/vyrodovalexey/avarouter/internal/util"
)

// Server is the HTTP routing server. It owns the listener, the
// dispatcher, and the active route table.
type Server struct {
	cfg        config.ListenerConfig
	logger     observability.Logger
	dispatcher *Dispatcher
	handler    http.Handler
	httpServer *http.Server

	mu      sync.Mutex
	started bool
}

// ServerOption is a functional option for configuring the server.
type ServerOption func(*Server)

// WithMiddleware wraps the dispatcher with the given middleware,
// outermost first.
func WithMiddleware(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(s *Server) {
		s.handler = middleware.Chain(s.dispatcher, mw...)
	}
}

// New creates a server from configuration. The initial route table is
// built from cfg.Spec.Routes; configs that fail to build are rejected.
func New(cfg *config.RouterConfig, logger observability.Logger, opts ...ServerOption) (*Server, error) {
	if logger == nil {
		logger = observability.NopLogger()
	}

	table, err := BuildTable(cfg.Spec.Routes)
	if err != nil {
		return nil, util.WrapError(err, "building route table")
	}

	rtr := router.New(router.WithLogger(logger))
	rtr.Swap(table)

	s := &Server{
		cfg:        cfg.Spec.Listener,
		logger:     logger,
		dispatcher: NewDispatcher(rtr, logger),
	}
	s.handler = s.dispatcher

	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.WriteTimeout.Duration(),
		IdleTimeout:  s.cfg.IdleTimeout.Duration(),
	}

	return s, nil
}

// Handler returns the composed request handler, for tests and for
// embedding into other servers.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Router returns the underlying router.
func (s *Server) Router() *router.Router {
	return s.dispatcher.Router()
}

// RouteCount returns the number of routes in the active table.
func (s *Server) RouteCount() int {
	return s.Router().Table().Len()
}

// Reload builds a new route table from the configuration and installs
// it atomically. On error the active table is left untouched.
func (s *Server) Reload(cfg *config.RouterConfig) error {
	table, err := BuildTable(cfg.Spec.Routes)
	if err != nil {
		return util.WrapError(err, "building route table")
	}

	s.Router().Swap(table)
	return nil
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return util.WrapError(err, "listening on "+s.cfg.Address)
	}

	s.logger.Info("server listening",
		observability.String("address", ln.Addr().String()),
		observability.Int("routes", s.RouteCount()),
	)

	if err := s.httpServer.Serve(ln); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, letting in-flight requests
// finish within the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if timeout := s.cfg.ShutdownTimeout.Duration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
