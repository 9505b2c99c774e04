// Package metrics exposes Prometheus collectors for match operations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-coach/internal/matching"
	"github.com/jonathan/resume-coach/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on one registry
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.SummaryVec
	requestsTotal   *prometheus.CounterVec
	evaluations     *prometheus.CounterVec
	scores          prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
}

// New creates a registry with the match and HTTP collectors registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requestDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_evaluations_total",
				Help: "Requirement evaluations by category and status",
			},
			[]string{"category", "status"},
		),
		scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "match_score",
				Help:    "Distribution of match scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.requestDuration, m.requestsTotal, m.evaluations, m.scores, m.cacheLookups)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResult records one match result. Unrecognized categories share the
// "unknown" label so upstream typos cannot grow the label set.
func (m *Metrics) ObserveResult(result *types.MatchResult) {
	if m == nil || result == nil {
		return
	}
	for _, e := range result.Evaluations {
		kind := matching.KindUnknown
		if e.Requirement != nil {
			kind = matching.KindOf(e.Requirement.Category)
		}
		category := kind.String()
		m.evaluations.WithLabelValues(category, string(e.Status)).Inc()
	}
	m.scores.Observe(float64(result.Score))
}

// ObserveCache records a cache lookup outcome: "hit", "miss" or "error"
func (m *Metrics) ObserveCache(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration and count per method, route pattern and status
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// Requests rejected before routing have no pattern; raw paths would grow the label set
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(rec.status)

		m.requestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
	})
}
