// Package server exposes a compiled pattern file over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coregx/matchkit/internal/logging"
	"github.com/coregx/matchkit/patternfile"
)

const shutdownTimeout = 5 * time.Second

// Result labels for the match counter.
const (
	resultMatched   = "matched"
	resultUnmatched = "unmatched"
	resultInvalid   = "invalid"
)

// MatchRequest is the body of POST /match. Exactly one of Input and Tokens
// must be set; Input is split with the pattern's tokenizer.
type MatchRequest struct {
	Input  *string  `json:"input,omitempty"`
	Tokens []string `json:"tokens,omitempty"`
}

// MatchResponse is the body returned by POST /match.
type MatchResponse struct {
	Matched bool `json:"matched"`
	Tokens  int  `json:"tokens"`
}

// PatternInfo is the body returned by GET /pattern.
type PatternInfo struct {
	Name   string `json:"name"`
	Mode   string `json:"mode"`
	States int    `json:"states"`
	Edges  int    `json:"edges"`
	Roots  int    `json:"roots"`
}

// Server serves match requests against one compiled pattern.
// Its metrics live in a private registry exposed on /metrics.
type Server struct {
	compiled *patternfile.Compiled
	logger   *slog.Logger
	handler  http.Handler

	registry *prometheus.Registry
	matches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a server for compiled. logger may be nil.
func New(compiled *patternfile.Compiled, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		compiled: compiled,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchkit_match_requests_total",
				Help: "Match requests by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchkit_match_duration_seconds",
			Help:    "Time spent matching one request",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	s.registry.MustRegister(s.matches, s.duration)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/match", s.handleMatch)
	r.Get("/pattern", s.handlePattern)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.handler = r

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.matches.WithLabelValues(resultInvalid).Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("match: invalid request body", "error", err)
		return
	}

	var tokens []string
	switch {
	case req.Input != nil && req.Tokens != nil:
		s.matches.WithLabelValues(resultInvalid).Inc()
		http.Error(w, "Set either input or tokens, not both", http.StatusBadRequest)
		return
	case req.Input != nil:
		tokens = s.compiled.Tokenize(*req.Input)
	case req.Tokens != nil:
		tokens = req.Tokens
	default:
		s.matches.WithLabelValues(resultInvalid).Inc()
		http.Error(w, "Missing input or tokens", http.StatusBadRequest)
		return
	}

	start := time.Now()
	matched := s.compiled.Matcher.Match(tokens)
	s.duration.Observe(time.Since(start).Seconds())

	result := resultUnmatched
	if matched {
		result = resultMatched
	}
	s.matches.WithLabelValues(result).Inc()
	s.logger.Debug("match", "result", result, "tokens", len(tokens))

	writeJSON(w, MatchResponse{Matched: matched, Tokens: len(tokens)})
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	a := s.compiled.Matcher.Automaton()
	writeJSON(w, PatternInfo{
		Name:   s.compiled.Name,
		Mode:   s.compiled.Matcher.Mode().String(),
		States: a.States(),
		Edges:  a.Graph().NumEdges(),
		Roots:  len(a.Roots()),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests a deadline to complete.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: shutdownTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr, "pattern", s.compiled.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		s.logger.Info("server stopped")
		return nil
	}
}
