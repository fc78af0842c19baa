package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/vacancy-matching/internal/types"
)

const insertMatch = `INSERT INTO matches (profile_id, request_id, match_status_id, match_feedback_id, profile_comment, hr_advisor_comment)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

// SaveMatches inserts matches in a single batch and returns them with their
// generated ids and timestamps. The batch runs in one implicit transaction.
func (db *DB) SaveMatches(ctx context.Context, matches []types.Match) ([]types.Match, error) {
	if len(matches) == 0 {
		return []types.Match{}, nil
	}

	batch := &pgx.Batch{}
	for _, m := range matches {
		var feedbackID any
		if m.MatchFeedback != nil {
			feedbackID = m.MatchFeedback.ID
		}
		batch.Queue(insertMatch, m.ProfileID, m.RequestID, m.MatchStatus.ID, feedbackID, m.ProfileComment, m.HRAdvisorComment)
	}

	results := db.q.SendBatch(ctx, batch)
	saved := make([]types.Match, len(matches))
	for i, m := range matches {
		if err := results.QueryRow().Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("failed to insert match %d of %d: %w", i+1, len(matches), err)
		}
		saved[i] = m
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to save matches: %w", err)
	}
	return saved, nil
}
