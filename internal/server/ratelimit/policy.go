package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Policy limits one method and path. A Path ending in "/" matches by prefix.
type Policy struct {
	Method string
	Path   string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity; defaults to Limit
}

func (p Policy) capacity() int {
	if p.Burst > 0 {
		return p.Burst
	}
	return p.Limit
}

func (p Policy) rate() float64 {
	if p.Window <= 0 {
		return 0
	}
	return float64(p.Limit) / p.Window.Seconds()
}

// DefaultPolicies returns the per-route tiers for the match API.
func DefaultPolicies() []Policy {
	return []Policy{
		// Batch matching fans out across the worker pool
		{Method: http.MethodPost, Path: "/match/batch", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: http.MethodPost, Path: "/match", Limit: 300, Window: time.Minute, Burst: 30},
		{Method: http.MethodDelete, Path: "/matches/", Limit: 60, Window: time.Minute, Burst: 10},

		{Method: http.MethodGet, Path: "/health"},
		{Method: http.MethodGet, Path: "/metrics"},
	}
}

// findPolicy returns the policy for method and path, preferring exact matches.
func findPolicy(method, path string, policies []Policy) (Policy, bool) {
	for _, p := range policies {
		if p.Method == method && p.Path == path {
			return p, true
		}
	}
	for _, p := range policies {
		if p.Method == method && strings.HasSuffix(p.Path, "/") && strings.HasPrefix(path, p.Path) {
			return p, true
		}
	}
	return Policy{}, false
}
