package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/vacancy-matching/internal/types"
)

const requestQuery = `SELECT r.id, c.code, lr.code, COALESCE(rs.code, ''),
       COALESCE(ARRAY(
           SELECT ci.code FROM request_cities rc
           JOIN cities ci ON ci.id = rc.city_id
           WHERE rc.request_id = r.id
           ORDER BY ci.code), '{}'),
       r.created_at, r.updated_at
FROM requests r
JOIN classifications c ON c.id = r.classification_id
JOIN language_requirements lr ON lr.id = r.language_requirement_id
LEFT JOIN request_statuses rs ON rs.id = r.request_status_id
WHERE r.id = $1`

// FindRequestByID loads a request with its classification, cities and language requirement.
// It returns nil if the request does not exist.
func (db *DB) FindRequestByID(ctx context.Context, id uuid.UUID) (*types.Request, error) {
	var r types.Request
	err := db.q.QueryRow(ctx, requestQuery, id).Scan(
		&r.ID, &r.ClassificationCode, &r.LanguageRequirementCode, &r.StatusCode,
		&r.CityCodes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}
	return &r, nil
}
