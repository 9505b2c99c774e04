package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-coach/internal/types"
)

// MatchRecord is a persisted match: the request that was evaluated and its result
type MatchRecord struct {
	ID        uuid.UUID           `json:"id"`
	Company   string              `json:"company"`
	RoleTitle string              `json:"role_title"`
	Score     int                 `json:"score"`
	Request   *types.MatchRequest `json:"request"`
	Result    *types.MatchResult  `json:"result"`
	CreatedAt time.Time           `json:"created_at"`
}

// MatchSummary is a lightweight view of a match record for listing
type MatchSummary struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	RoleTitle string    `json:"role_title"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchFilters holds optional filters for listing matches
type MatchFilters struct {
	Company  string
	MinScore int
	Limit    int
}

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)
