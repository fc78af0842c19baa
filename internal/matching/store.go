package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/criteria"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// RequestStore loads staffing requests. A missing request returns (nil, nil).
type RequestStore interface {
	FindRequestByID(ctx context.Context, id uuid.UUID) (*types.Request, error)
}

// ProfileStore returns every profile satisfying a conjunction of criteria.
type ProfileStore interface {
	FindProfiles(ctx context.Context, where criteria.Conjunction) ([]types.Profile, error)
}

// MatchStore persists matches in bulk and returns them with generated ids and timestamps.
type MatchStore interface {
	SaveMatches(ctx context.Context, matches []types.Match) ([]types.Match, error)
}

// Store is everything a matching run reads from and writes to.
type Store interface {
	RequestStore
	ProfileStore
	MatchStore
	lookup.Finder
}

// Transactor runs fn against a Store bound to a single transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Locker provides a mutual-exclusion lock keyed by string.
// ok is false when another holder owns the key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// Publisher announces matches created by a run.
type Publisher interface {
	PublishMatchesCreated(ctx context.Context, requestID uuid.UUID, matches []types.Match) error
}
