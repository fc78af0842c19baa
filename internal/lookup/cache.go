package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/vacancy-matching/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned by Cache lookups before the first successful Load.
var ErrNotLoaded = errors.New("lookup cache not loaded")

// Cache is an in-memory snapshot of every reference table.
type Cache struct {
	source Source

	mu       sync.RWMutex
	snapshot map[Table]map[string]types.CodeEntity
}

// NewCache creates an empty cache backed by source. Call Load before use.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Load reads all reference tables concurrently and replaces the snapshot.
// On failure the previous snapshot is kept.
func (c *Cache) Load(ctx context.Context) error {
	results := make([][]types.CodeEntity, len(Tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range Tables {
		g.Go(func() error {
			entities, err := c.source.ListCodes(gctx, table)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", table, err)
			}
			results[i] = entities
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next := make(map[Table]map[string]types.CodeEntity, len(Tables))
	for i, table := range Tables {
		byCode := make(map[string]types.CodeEntity, len(results[i]))
		for _, e := range results[i] {
			byCode[e.Code] = e
		}
		next[table] = byCode
	}

	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()
	return nil
}

// FindByCode implements Finder.
func (c *Cache) FindByCode(_ context.Context, table Table, code string) (*types.CodeEntity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil, ErrNotLoaded
	}
	if !table.Valid() {
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}
	e, ok := c.snapshot[table][code]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Len returns the number of cached entities in table.
func (c *Cache) Len(table Table) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot[table])
}
