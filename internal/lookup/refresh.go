package lookup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads a Cache on a cron schedule.
type Refresher struct {
	cron   *cron.Cron
	cache  *Cache
	spec   string
	logger *zap.Logger
}

// NewRefresher creates a Refresher for spec, e.g. "@every 15m".
func NewRefresher(cache *Cache, spec string, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		cron:   cron.New(),
		cache:  cache,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.spec, func() { r.refresh(ctx) }); err != nil {
		return fmt.Errorf("invalid lookup refresh schedule %q: %w", r.spec, err)
	}
	r.cron.Start()
	r.logger.Info("lookup refresh scheduled", zap.String("schedule", r.spec))
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.cache.Load(ctx); err != nil {
		r.logger.Error("lookup refresh failed, keeping previous snapshot", zap.Error(err))
		return
	}
	r.logger.Debug("lookup cache refreshed")
}
