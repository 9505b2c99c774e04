package matching

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-coach/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds MatchAll when the caller passes a non-positive limit
const DefaultConcurrency = 8

// MatchAll matches independent requests concurrently, at most limit at a time.
// Results are returned in input order. Cancellation of ctx stops items that have
// not started yet; an individual match is never interrupted.
func MatchAll(ctx context.Context, m *Matcher, reqs []*types.MatchRequest, limit int) ([]*types.MatchResult, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]*types.MatchResult, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("match %d not started: %w", i, err)
			}
			results[i] = m.MatchRequest(req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
