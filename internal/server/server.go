// Package server exposes the calculator over HTTP: a JSON endpoint running
// one strategy per request, a liveness probe, and Prometheus exposition,
// all behind standard security headers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
)

// tracerName is the instrumentation scope for spans emitted by this package.
const tracerName = "github.com/agbru/fibbench/internal/server"

// DefaultRequestTimeout bounds the calculation behind a single request.
const DefaultRequestTimeout = 30 * time.Second

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 5 * time.Second

// Server serves the calculator API. Every request obtains a fresh calculator
// instance from the factory, so concurrent handlers never share a memo table.
type Server struct {
	addr       string
	factory    fibonacci.CalculatorFactory
	security   SecurityConfig
	metrics    *Metrics
	logger     logging.Logger
	timeout    time.Duration
	naiveLimit int64
}

// Option configures a Server during construction.
type Option func(*Server)

// WithSecurity replaces the default security configuration.
func WithSecurity(cfg SecurityConfig) Option {
	return func(s *Server) { s.security = cfg }
}

// WithTimeout sets the per-request calculation timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithNaiveLimit sets the highest index the naive strategy accepts.
func WithNaiveLimit(limit int64) Option {
	return func(s *Server) { s.naiveLimit = limit }
}

// New creates a Server listening on addr once ListenAndServe is called.
func New(addr string, factory fibonacci.CalculatorFactory, logger logging.Logger, opts ...Option) *Server {
	s := &Server{
		addr:       addr,
		factory:    factory,
		security:   DefaultSecurityConfig(),
		metrics:    NewMetrics(),
		logger:     logger,
		timeout:    DefaultRequestTimeout,
		naiveLimit: fibonacci.DefaultNaiveLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/fib", s.chain(s.handleFib))
	mux.HandleFunc("/healthz", s.chain(s.handleHealth))
	mux.HandleFunc("/metrics", s.chain(s.handleMetrics))
	return mux
}

// chain applies the standard middleware stack to a handler.
func (s *Server) chain(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// metricsMiddleware tracks in-flight and total request counts.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully. A nil error means a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("serving HTTP API", logging.String("addr", s.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		<-errCh
		s.logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	}
}

// fibResponse is the JSON body for a successful calculation.
type fibResponse struct {
	N               int64   `json:"n"`
	Strategy        string  `json:"strategy"`
	Value           string  `json:"value"`
	DurationSeconds float64 `json:"duration_seconds"`
	MemoLen         int     `json:"memo_len"`
}

// errorResponse is the JSON body for every error path.
type errorResponse struct {
	Error string `json:"error"`
}

// handleFib runs one strategy for GET /api/v1/fib?n=<n>&algo=<key>.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	nStr := q.Get("n")
	if nStr == "" {
		s.writeError(w, http.StatusBadRequest, "missing parameter n")
		return
	}
	n, err := strconv.ParseInt(nStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid n %q", nStr))
		return
	}
	if n < 0 || n > s.security.MaxNValue {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("n must be in [0, %d]", s.security.MaxNValue))
		return
	}

	algo := q.Get("algo")
	if algo == "" {
		algo = fibonacci.KeyIterative
	}
	calc, err := s.factory.Get(algo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "http.fib")
	span.SetAttributes(
		attribute.String("fibonacci.strategy", calc.Name()),
		attribute.Int64("fibonacci.n", n),
	)
	defer span.End()

	opts := fibonacci.Options{NaiveLimit: s.naiveLimit, ArenaAllocation: true}

	start := time.Now()
	value, err := calc.Calculate(ctx, nil, 0, n, opts)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		status := http.StatusInternalServerError
		var vErr apperrors.ValidationError
		switch {
		case errors.As(err, &vErr):
			status = http.StatusBadRequest
		case apperrors.IsContextError(err):
			status = http.StatusGatewayTimeout
		}
		s.logError("calculation failed", err,
			logging.String("strategy", calc.Name()),
			logging.Int("n", int(n)))
		s.writeError(w, status, err.Error())
		return
	}

	s.metrics.ObserveCalculation(calc.Name(), elapsed.Seconds())

	memoLen := 0
	if memo := calc.Memo(); memo != nil {
		memoLen = memo.Len()
	}

	writeJSON(w, http.StatusOK, fibResponse{
		N:               n,
		Strategy:        calc.Name(),
		Value:           value.String(),
		DurationSeconds: elapsed.Seconds(),
		MemoLen:         memoLen,
	})
}

// handleHealth answers the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves the Prometheus exposition for GET requests.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if s.logger != nil {
			s.logger.Debug("method rejected",
				logging.String("path", r.URL.Path),
				logging.String("method", r.Method))
		}
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logError(msg string, err error, fields ...logging.Field) {
	if s.logger != nil {
		s.logger.Error(msg, err, fields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
