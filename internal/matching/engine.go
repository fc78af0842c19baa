package matching

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/metrics"
	"github.com/jonathan/vacancy-matching/internal/types"
	"go.uber.org/zap"
)

// DefaultGracePeriod is how close to WFA expiry a profile must be to count as urgent.
const DefaultGracePeriod = 30 * 24 * time.Hour

// DefaultLockTTL bounds how long a serialized run may hold its request lock.
const DefaultLockTTL = 30 * time.Second

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// GracePeriod nil selects DefaultGracePeriod. Zero makes a profile urgent
	// only when its WFA end date is today or earlier.
	GracePeriod *time.Duration

	// Transactional runs load, filter and persist in one store transaction.
	// The store must implement Transactor.
	Transactional bool

	// SerializeRuns takes a per-request lock for the duration of a run.
	// Duplicate matches across runs are still possible; the lock only
	// prevents overlapping runs.
	SerializeRuns bool
	LockTTL       time.Duration
	Locker        Locker

	// Lookup resolves reference codes. Defaults to the store.
	Lookup lookup.Finder

	Publisher Publisher
	Logger    *zap.Logger

	Now     func() time.Time
	NewRand func() *rand.Rand
}

// Engine runs matching for staffing requests. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	store    Store
	codes    lookup.Codes
	resolver *LanguageResolver
	opts     Options
	grace    time.Duration
	logger   *zap.Logger
}

// NewEngine creates an Engine over store.
func NewEngine(store Store, codes lookup.Codes, opts Options) (*Engine, error) {
	if store == nil {
		return nil, errors.New("matching: store is required")
	}
	grace := DefaultGracePeriod
	if opts.GracePeriod != nil {
		grace = *opts.GracePeriod
	}
	if grace < 0 {
		return nil, fmt.Errorf("matching: grace period must not be negative, got %s", grace)
	}
	if opts.Transactional {
		if _, ok := store.(Transactor); !ok {
			return nil, errors.New("matching: transactional runs require a store that supports transactions")
		}
	}
	if opts.SerializeRuns && opts.Locker == nil {
		return nil, errors.New("matching: serialized runs require a locker")
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = DefaultLockTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewRand == nil {
		opts.NewRand = newRand
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		store:    store,
		codes:    codes,
		resolver: NewLanguageResolver(codes),
		opts:     opts,
		grace:    grace,
		logger:   logger,
	}, nil
}

// newRand returns an independently seeded generator, one per run.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// FindMatches finds up to max eligible profiles for the request, orders them by
// priority and persists one pending-approval match per profile. It returns the
// persisted matches, which may be empty. Repeated calls are not deduplicated.
func (e *Engine) FindMatches(ctx context.Context, requestID uuid.UUID, max int) ([]types.Match, error) {
	start := time.Now()
	log := e.logger.With(zap.Stringer("request_id", requestID), zap.Int("max", max))

	matches, eligible, err := e.findMatches(ctx, requestID, max)
	elapsed := time.Since(start)
	metrics.MatchRunDuration.Observe(elapsed.Seconds())

	if err != nil {
		kind := KindOf(err)
		metrics.MatchRunsTotal.WithLabelValues(outcome(kind)).Inc()
		if kind == KindInvalidArgument || kind == KindConflict {
			log.Warn("matching run rejected", zap.Error(err), zap.Stringer("kind", kind))
		} else {
			log.Error("matching run failed", zap.Error(err), zap.Stringer("kind", kind))
		}
		return nil, err
	}

	metrics.EligibleCandidates.Observe(float64(eligible))
	metrics.MatchesCreatedTotal.Add(float64(len(matches)))
	if len(matches) == 0 {
		metrics.MatchRunsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	} else {
		metrics.MatchRunsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	log.Info("matching run completed",
		zap.Int("eligible", eligible),
		zap.Int("matched", len(matches)),
		zap.Duration("duration", elapsed))

	if len(matches) > 0 && e.opts.Publisher != nil {
		if err := e.opts.Publisher.PublishMatchesCreated(ctx, requestID, matches); err != nil {
			metrics.EventsFailedTotal.Inc()
			log.Error("failed to publish matches created event", zap.Error(err))
		}
	}
	return matches, nil
}

func (e *Engine) findMatches(ctx context.Context, requestID uuid.UUID, limit int) ([]types.Match, int, error) {
	if limit <= 0 {
		return nil, 0, invalidArgument(ErrInvalidMax, "max %d", limit)
	}

	if e.opts.SerializeRuns {
		unlock, ok, err := e.opts.Locker.TryLock(ctx, LockKey(requestID), e.opts.LockTTL)
		if err != nil {
			return nil, 0, storeError(err, "failed to acquire run lock")
		}
		if !ok {
			return nil, 0, &Error{Kind: KindConflict, Message: "request " + requestID.String(), Cause: ErrRunInProgress}
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release run lock", zap.Stringer("request_id", requestID), zap.Error(err))
			}
		}()
	}

	var (
		matches  []types.Match
		eligible int
	)
	run := func(ctx context.Context, s Store) error {
		var err error
		matches, eligible, err = e.run(ctx, s, requestID, limit)
		return err
	}

	var err error
	if e.opts.Transactional {
		err = e.store.(Transactor).InTx(ctx, run)
	} else {
		err = run(ctx, e.store)
	}
	if err != nil {
		if KindOf(err) == 0 {
			err = storeError(err, "matching transaction failed")
		}
		return nil, 0, err
	}
	return matches, eligible, nil
}

// run is one load-filter-prioritize-persist pass against s.
func (e *Engine) run(ctx context.Context, s Store, requestID uuid.UUID, limit int) ([]types.Match, int, error) {
	today := types.Date(e.opts.Now())

	request, err := s.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, 0, storeError(err, "failed to load request %s", requestID)
	}
	if request == nil {
		return nil, 0, invalidArgument(ErrRequestNotFound, "request %s", requestID)
	}

	candidates, err := FindCandidates(ctx, s, e.resolver, request, e.codes.ProfileStatusApproved, today)
	if err != nil {
		return nil, 0, err
	}

	prioritized := Prioritize(candidates, e.opts.NewRand(), today, e.grace, limit)

	finder := e.opts.Lookup
	if finder == nil {
		finder = s
	}
	status, err := ResolveMatchStatus(ctx, finder, e.codes.MatchStatusPendingApproval)
	if err != nil {
		return nil, 0, err
	}

	matches, err := Materialize(ctx, s, status, request, prioritized)
	if err != nil {
		return nil, 0, err
	}
	return matches, len(candidates), nil
}

// LockKey is the lock key guarding runs for requestID.
func LockKey(requestID uuid.UUID) string {
	return "matching:request:" + requestID.String()
}

func outcome(kind Kind) string {
	switch kind {
	case KindInvalidArgument:
		return metrics.OutcomeInvalidArgument
	case KindConfiguration:
		return metrics.OutcomeConfiguration
	case KindConflict:
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
