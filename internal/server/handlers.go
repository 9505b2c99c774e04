package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-coach/internal/cache"
	"github.com/jonathan/resume-coach/internal/db"
	"github.com/jonathan/resume-coach/internal/matching"
	"github.com/jonathan/resume-coach/internal/types"
)

// Request limits
const (
	maxMatchBody = 1 << 20
	maxBatchBody = 16 << 20
	MaxBatchSize = 200
)

// matchResponse is a MatchResult plus the ID of its stored record, when persisted
type matchResponse struct {
	*types.MatchResult
	ID *uuid.UUID `json:"id,omitempty"`
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// handleMatch evaluates one MatchRequest
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, maxMatchBody)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := matching.Decode(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result := s.cachedMatch(r, req)
	s.metrics.ObserveResult(result)

	resp := matchResponse{MatchResult: result}
	if s.store != nil {
		id, err := s.store.CreateMatch(r.Context(), req, result)
		if err != nil {
			// The result is still valid; only history is lost
			s.log.Error("failed to persist match", zap.Error(err))
		} else {
			resp.ID = &id
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// cachedMatch serves req from the result cache when possible, computing and
// storing the result on a miss. Cache failures fall through to computation.
func (s *Server) cachedMatch(r *http.Request, req *types.MatchRequest) *types.MatchResult {
	if s.cache == nil || !s.cache.Enabled() {
		return s.matcher.MatchRequest(req)
	}

	key, err := cache.Key(req, s.matcher.Employers().Tokens())
	if err != nil {
		s.log.Warn("failed to derive cache key", zap.Error(err))
		return s.matcher.MatchRequest(req)
	}

	cached, ok, err := s.cache.Get(r.Context(), key)
	switch {
	case err != nil:
		s.metrics.ObserveCache("error")
		s.log.Warn("cache lookup failed", zap.Error(err))
	case ok:
		s.metrics.ObserveCache("hit")
		return cached
	default:
		s.metrics.ObserveCache("miss")
	}

	result := s.matcher.MatchRequest(req)
	if err := s.cache.Set(r.Context(), key, result); err != nil {
		s.log.Warn("cache store failed", zap.Error(err))
	}
	return result
}

// handleMatchBatch evaluates an array of MatchRequests, preserving order
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, maxBatchBody)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	reqs, err := matching.DecodeBatch(body, MaxBatchSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	results, err := matching.MatchAll(r.Context(), s.matcher, reqs, s.concurrency)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, result := range results {
		s.metrics.ObserveResult(result)
	}

	s.jsonResponse(w, http.StatusOK, results)
}

// handleListMatches returns stored match summaries, newest first
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrStoreUnavailable{})
		return
	}

	filters, err := parseMatchFilters(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	matches, err := s.store.ListMatches(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

func parseMatchFilters(r *http.Request) (db.MatchFilters, error) {
	q := r.URL.Query()
	filters := db.MatchFilters{Company: q.Get("company")}

	if v := q.Get("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return filters, &ErrValidation{Field: "min_score", Message: "must be an integer between 0 and 100"}
		}
		filters.MinScore = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return filters, &ErrValidation{Field: "limit", Message: "must be a positive integer"}
		}
		filters.Limit = n
	}
	return filters, nil
}

func parseMatchID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid match ID"}
	}
	return id, nil
}

// handleGetMatch returns one stored match with its request and result
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrStoreUnavailable{})
		return
	}
	id, err := parseMatchID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	record, err := s.store.GetMatch(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if record == nil {
		s.fail(w, r, &ErrMatchNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteMatch removes a stored match
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrStoreUnavailable{})
		return
	}
	id, err := parseMatchID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.store.DeleteMatch(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrMatchNotFound) {
			err = &ErrMatchNotFound{ID: id}
		}
		s.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]string{
		"status":   "ok",
		"database": "disabled",
		"cache":    "disabled",
	}
	if s.store != nil {
		status["database"] = "enabled"
	}
	if s.cache != nil && s.cache.Enabled() {
		status["cache"] = "enabled"
	}
	s.jsonResponse(w, http.StatusOK, status)
}
