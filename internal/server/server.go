package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/logging"
	"github.com/agbru/fibbridge/internal/sysmon"
)

const (
	// DefaultRequestTimeout bounds a single /fib or /call request.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultShutdownTimeout is how long in-flight requests get on shutdown.
	DefaultShutdownTimeout = 10 * time.Second
	// MaxRequestBodyBytes caps /call request bodies.
	MaxRequestBodyBytes = 1 << 20
)

var tracer = otel.Tracer("github.com/agbru/fibbridge/internal/server")

// Config holds the HTTP host settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DefaultAlgo is the backend used by /fib when none is requested.
	DefaultAlgo string
	// RequestTimeout bounds each request; zero selects DefaultRequestTimeout.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown; zero selects DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
	// Options is passed to the backends.
	Options fibonacci.Options
	// Security configures headers, CORS and the index cap.
	Security SecurityConfig
}

// Server is the fibbridge HTTP host.
type Server struct {
	cfg        Config
	factory    fibonacci.CalculatorFactory
	metrics    *Metrics
	logger     logging.Logger
	sampler    func() sysmon.Stats
	startedAt  time.Time
	httpServer *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics shares an existing Metrics instance.
func WithMetrics(m *Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithSampler replaces the host resource sampler used by /health.
func WithSampler(f func() sysmon.Stats) Option { return func(s *Server) { s.sampler = f } }

// NewServer builds a Server over the given backends.
func NewServer(factory fibonacci.CalculatorFactory, cfg Config, opts ...Option) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Security.MaxNValue == 0 {
		cfg.Security.MaxNValue = DefaultSecurityConfig().MaxNValue
	}

	s := &Server{
		cfg:       cfg,
		factory:   factory,
		sampler:   sysmon.Sample,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewDefaultLogger()
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed and instrumented handler tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fib", s.wrap(s.handleFibonacci))
	mux.HandleFunc("POST /call/{name}", s.wrap(s.handleCall))
	mux.HandleFunc("OPTIONS /call/{name}", s.wrap(s.handleCall))
	mux.HandleFunc("GET /health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(s.metricsMiddleware(SecurityMiddleware(s.cfg.Security, h)))
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("HTTP host listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP host")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routeOf(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(routeOf(r), rec.status, time.Since(start))
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
