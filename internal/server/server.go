// Package server provides the HTTP REST API for the match engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-coach/internal/cache"
	"github.com/jonathan/resume-coach/internal/db"
	"github.com/jonathan/resume-coach/internal/logger"
	"github.com/jonathan/resume-coach/internal/matching"
	"github.com/jonathan/resume-coach/internal/metrics"
	"github.com/jonathan/resume-coach/internal/server/ratelimit"
	"github.com/jonathan/resume-coach/internal/types"
)

// MatchStore persists match records. *db.DB implements it.
type MatchStore interface {
	CreateMatch(ctx context.Context, req *types.MatchRequest, result *types.MatchResult) (uuid.UUID, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*db.MatchRecord, error)
	ListMatches(ctx context.Context, filters db.MatchFilters) ([]db.MatchSummary, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	Close()
}

// ResultCache stores computed results by request key. *cache.Cache implements it.
type ResultCache interface {
	Get(ctx context.Context, key string) (*types.MatchResult, bool, error)
	Set(ctx context.Context, key string, result *types.MatchResult) error
	Enabled() bool
	Close() error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       MatchStore  // nil when no database is configured
	cache       ResultCache // nil when no Redis is configured
	matcher     *matching.Matcher
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
	concurrency int
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	CacheTTL       time.Duration
	EliteEmployers []string // nil keeps the default employer table
	Concurrency    int
}

// Deps are the collaborators a Server is assembled from
type Deps struct {
	Store       MatchStore
	Cache       ResultCache
	Matcher     *matching.Matcher
	Metrics     *metrics.Metrics
	RateLimiter *ratelimit.Limiter
	Logger      *zap.Logger
	Concurrency int
}

// New creates a new server instance, connecting to the configured backing services
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Server, error) {
	log = logger.Or(log)
	deps := Deps{
		Matcher:     matching.New(matching.WithEmployerTokens(cfg.EliteEmployers)),
		Metrics:     metrics.New(),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:      log,
		Concurrency: cfg.Concurrency,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			deps.RateLimiter.Stop()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			deps.RateLimiter.Stop()
			return nil, err
		}
		deps.Store = database
	} else {
		log.Info("no database configured, match history endpoints disabled")
	}

	if cfg.RedisAddr != "" {
		deps.Cache = cache.New(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
		}, log.Named("cache"))
	}

	return NewWithDeps(cfg.Port, deps), nil
}

// NewWithDeps creates a server from already constructed collaborators
func NewWithDeps(port int, deps Deps) *Server {
	s := &Server{
		store:       deps.Store,
		cache:       deps.Cache,
		matcher:     deps.Matcher,
		metrics:     deps.Metrics,
		rateLimiter: deps.RateLimiter,
		log:         logger.Or(deps.Logger),
		concurrency: deps.Concurrency,
	}
	if s.matcher == nil {
		s.matcher = matching.New()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if s.concurrency <= 0 {
		s.concurrency = matching.DefaultConcurrency
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/batch", s.handleMatchBatch)

	// Match history
	mux.HandleFunc("GET /matches", s.handleListMatches)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("DELETE /matches/{id}", s.handleDeleteMatch)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.metrics.Middleware(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.close()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	s.log.Info("server stopped")
	return nil
}

// close releases the rate limiter and backing services
func (s *Server) close() {
	s.rateLimiter.Stop()
	if s.store != nil {
		s.store.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.log.Warn("failed to close cache", zap.Error(err))
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that have exhausted their bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		setRateLimitHeaders(w, d)
		if !d.Allowed {
			s.rateLimitResponse(w, r, d)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter remembers the status code for the request log
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// clientID identifies the caller by IP address from RemoteAddr
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on metered responses
func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	if d.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, d ratelimit.Decision) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   d.Limit,
	}
	if !d.ResetTime.IsZero() {
		response["reset_at"] = d.ResetTime.Format(time.RFC3339)
	}
	if d.RetryAfter > 0 {
		seconds := int(d.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Info("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("limit", d.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it; server errors are logged and masked
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
