// Package db provides PostgreSQL storage for match records.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-coach/internal/types"
)

// ErrMatchNotFound is returned by DeleteMatch when no record has the given ID
var ErrMatchNotFound = errors.New("match not found")

// schema creates the match_records table. gen_random_uuid is built in from PostgreSQL 13.
const schema = `
CREATE TABLE IF NOT EXISTS match_records (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company     TEXT NOT NULL DEFAULT '',
	role_title  TEXT NOT NULL DEFAULT '',
	score       INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
	request     JSONB NOT NULL,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS match_records_created_at_idx ON match_records (created_at DESC);
CREATE INDEX IF NOT EXISTS match_records_company_idx ON match_records (company);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables this package needs if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate match_records: %w", err)
	}
	return nil
}

// CreateMatch stores a request and its result and returns the new record ID
func (db *DB) CreateMatch(ctx context.Context, req *types.MatchRequest, result *types.MatchResult) (uuid.UUID, error) {
	if req == nil || result == nil {
		return uuid.Nil, fmt.Errorf("request and result are required")
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal match request: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal match result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO match_records (company, role_title, score, request, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.Job.Company, req.Job.RoleTitle, result.Score, reqJSON, resultJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create match: %w", err)
	}
	return id, nil
}

// GetMatch retrieves a match record by ID. Returns nil, nil when it does not exist.
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	var rec MatchRecord
	var reqJSON, resultJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, company, role_title, score, request, result, created_at
		 FROM match_records WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Company, &rec.RoleTitle, &rec.Score, &reqJSON, &resultJSON, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if err := decodeRecord(&rec, reqJSON, resultJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}

// decodeRecord unmarshals the stored JSON columns. The result's requirement
// pointers are re-bound to the decoded request so they share one copy.
func decodeRecord(rec *MatchRecord, reqJSON, resultJSON []byte) error {
	var req types.MatchRequest
	if err := json.Unmarshal(reqJSON, &req); err != nil {
		return fmt.Errorf("failed to unmarshal stored request: %w", err)
	}
	var result types.MatchResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return fmt.Errorf("failed to unmarshal stored result: %w", err)
	}

	if len(result.Evaluations) == len(req.Job.Requirements) {
		for i := range result.Evaluations {
			result.Evaluations[i].Requirement = &req.Job.Requirements[i]
		}
	}

	rec.Request = &req
	rec.Result = &result
	return nil
}

// ListMatches retrieves recent match summaries with optional filters, newest first
func (db *DB) ListMatches(ctx context.Context, filters MatchFilters) ([]MatchSummary, error) {
	query, args := buildListQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := []MatchSummary{}
	for rows.Next() {
		var m MatchSummary
		if err := rows.Scan(&m.ID, &m.Company, &m.RoleTitle, &m.Score, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

// buildListQuery assembles the filtered listing query and its arguments
func buildListQuery(filters MatchFilters) (string, []any) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := `SELECT id, company, role_title, score, created_at
		FROM match_records WHERE 1=1`
	args := []any{}
	argNum := 1

	// Plain substring match; LIKE would treat % and _ in the filter as wildcards
	if filters.Company != "" {
		query += fmt.Sprintf(" AND position(lower($%d) in lower(company)) > 0", argNum)
		args = append(args, filters.Company)
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	return query, args
}

// DeleteMatch deletes a match record
func (db *DB) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM match_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return nil
}
