// Package server exposes book lookups over HTTP.
//
// Routes:
//
//	GET /api/books/{isbn}  resolve a book (record or {code, error} body)
//	GET /healthz           liveness probe
//	GET /metrics           Prometheus exposition, when enabled
//
// A resolved LookupError is a normal 200 response carrying an error body.
// Only faults map to error statuses: 400 for an unusable identifier, 502
// when the upstream catalog cannot be reached, 500 otherwise.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/biblio/pkg/books"
)

// Resolver resolves identifiers to book results. *lookup.Resolver implements it.
type Resolver interface {
	ResolveByIdentifier(ctx context.Context, raw string) (books.Result, error)
}

// Options configures a Server.
type Options struct {
	RateLimit float64      // Requests per second per client IP; 0 disables limiting
	RateBurst int          // Bucket size for RateLimit
	Metrics   http.Handler // Served at /metrics when non-nil

	// TrustedProxies are the peers allowed to supply the client address in
	// forwarding headers. With none, the client is always the TCP peer.
	TrustedProxies []netip.Prefix
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	resolver Resolver
	router   *chi.Mux
	limiter  *keyedLimiter
	metrics  http.Handler
	logger   *log.Logger
	trusted  []netip.Prefix
}

// New creates a Server with all routes configured.
// A nil logger uses log.Default().
func New(resolver Resolver, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		resolver: resolver,
		router:   chi.NewRouter(),
		metrics:  opts.Metrics,
		logger:   logger,
		trusted:  opts.TrustedProxies,
	}
	if opts.RateLimit > 0 {
		s.limiter = newKeyedLimiter(opts.RateLimit, opts.RateBurst)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(s.realIP)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.router.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimit)
		}
		r.Get("/books/{isbn}", s.handleGetBook)
	})
}

// Run serves on addr until ctx is canceled, then shuts down gracefully,
// waiting up to shutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
