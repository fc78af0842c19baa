package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/vacancy-matching/internal/config"
	"github.com/jonathan/vacancy-matching/internal/db"
	"github.com/jonathan/vacancy-matching/internal/events"
	"github.com/jonathan/vacancy-matching/internal/lock"
	"github.com/jonathan/vacancy-matching/internal/logging"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/matching"
	"github.com/jonathan/vacancy-matching/internal/memstore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// backingStore is what the engine and the lookup cache read from.
type backingStore interface {
	matching.Store
	lookup.Source
}

// backend is an open store plus everything that must be released with it.
type backend struct {
	store   backingStore
	db      *db.DB // nil for dataset-backed runs
	closers []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackend opens the dataset at datasetPath when given, otherwise the database.
func openBackend(ctx context.Context, cfg *config.Config, datasetPath string) (*backend, error) {
	if datasetPath != "" {
		store, err := memstore.LoadDataset(datasetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		return &backend{store: store}, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &backend{store: database, db: database, closers: []func(){database.Close}}, nil
}

// newEngine loads the lookup cache, checks the configured codes and wires the
// optional run lock and event publisher.
func newEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger, b *backend) (*matching.Engine, *lookup.Cache, error) {
	cache := lookup.NewCache(b.store)
	if err := cache.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	if err := verifyCodes(ctx, cache, cfg.Codes); err != nil {
		return nil, nil, err
	}

	opts := cfg.EngineOptions()
	opts.Lookup = cache
	opts.Logger = logging.WithComponent(logger, "matching")

	if cfg.Matching.SerializeRuns {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis_url: %w", err)
		}
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		opts.Locker = lock.NewRedisLocker(client)
	}

	if cfg.NATSURL != "" {
		natsCfg := events.DefaultConfig()
		natsCfg.URL = cfg.NATSURL
		publisher, err := events.NewPublisher(natsCfg, logging.WithComponent(logger, "events"))
		if err != nil {
			return nil, nil, err
		}
		b.closers = append(b.closers, publisher.Close)
		opts.Publisher = publisher
	}

	engine, err := matching.NewEngine(b.store, cfg.Codes, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, cache, nil
}

// verifyCodes fails when any configured code is missing from the reference data.
func verifyCodes(ctx context.Context, finder lookup.Finder, codes lookup.Codes) error {
	missing, err := lookup.VerifyCodes(ctx, finder, codes)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.String()
	}
	return fmt.Errorf("configured codes missing from reference data: %s", strings.Join(names, ", "))
}
