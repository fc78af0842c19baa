// Package memstore is an in-process implementation of the matching stores.
// Criteria are evaluated in memory against the stored profiles.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/criteria"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/matching"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// Store holds requests, profiles, matches and reference codes in memory.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	requests map[uuid.UUID]types.Request
	profiles []types.Profile
	matches  []types.Match
	codes    map[lookup.Table][]types.CodeEntity
	now      func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		requests: make(map[uuid.UUID]types.Request),
		codes:    make(map[lookup.Table][]types.CodeEntity),
		now:      time.Now,
	}
}

// AddRequest stores r, assigning an id if it has none.
func (s *Store) AddRequest(r types.Request) types.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.requests[r.ID] = r
	return r
}

// AddProfile stores p, assigning an id if it has none. Profiles are returned in insertion order.
func (s *Store) AddProfile(p types.Profile) types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.profiles = append(s.profiles, p)
	return p
}

// AddCode stores a reference entity, assigning an id if it has none.
func (s *Store) AddCode(table lookup.Table, e types.CodeEntity) types.CodeEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.codes[table] = append(s.codes[table], e)
	return e
}

// Matches returns every persisted match in save order.
func (s *Store) Matches() []types.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// FindRequestByID implements matching.RequestStore.
func (s *Store) FindRequestByID(_ context.Context, id uuid.UUID) (*types.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// FindProfiles implements matching.ProfileStore.
func (s *Store) FindProfiles(_ context.Context, where criteria.Conjunction) ([]types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return where.Filter(s.profiles), nil
}

// SaveMatches implements matching.MatchStore.
func (s *Store) SaveMatches(_ context.Context, matches []types.Match) ([]types.Match, error) {
	saved := s.stamp(matches)
	s.mu.Lock()
	s.matches = append(s.matches, saved...)
	s.mu.Unlock()
	return saved, nil
}

func (s *Store) stamp(matches []types.Match) []types.Match {
	now := s.now()
	saved := make([]types.Match, len(matches))
	for i, m := range matches {
		m.ID = uuid.New()
		m.CreatedAt = now
		m.UpdatedAt = now
		saved[i] = m
	}
	return saved
}

// FindByCode implements lookup.Finder.
func (s *Store) FindByCode(_ context.Context, table lookup.Table, code string) (*types.CodeEntity, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.codes[table] {
		if e.Code == code {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

// ListCodes implements lookup.Source.
func (s *Store) ListCodes(_ context.Context, table lookup.Table) ([]types.CodeEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CodeEntity, len(s.codes[table]))
	copy(out, s.codes[table])
	return out, nil
}

// InTx implements matching.Transactor. Transactions are serialized; matches
// saved inside fn become visible only if fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st matching.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txStore{Store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.matches = append(s.matches, tx.pending...)
	s.mu.Unlock()
	return nil
}

// txStore reads through to the parent and buffers writes until commit.
type txStore struct {
	*Store
	pending []types.Match
}

func (t *txStore) SaveMatches(_ context.Context, matches []types.Match) ([]types.Match, error) {
	saved := t.stamp(matches)
	t.pending = append(t.pending, saved...)
	return saved, nil
}
