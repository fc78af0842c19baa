// Package ratelimit throttles matching runs per client with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
	Whitelist         []string      `mapstructure:"whitelist"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
}

// DefaultConfig allows one matching run per second per client with a burst of ten.
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		RequestsPerMinute: 60,
		Burst:             10,
		IdleTTL:           time.Hour,
	}
}

type client struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter holds one token bucket per client.
type Limiter struct {
	cfg       Config
	whitelist map[string]bool
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

// NewLimiter creates a limiter. A zero burst defaults to the per-minute limit.
func NewLimiter(cfg Config) *Limiter {
	if cfg.Burst <= 0 {
		cfg.Burst = max(cfg.RequestsPerMinute, 1)
	}
	whitelist := make(map[string]bool, len(cfg.Whitelist))
	for _, ip := range cfg.Whitelist {
		whitelist[ip] = true
	}
	return &Limiter{
		cfg:       cfg,
		whitelist: whitelist,
		now:       time.Now,
		clients:   make(map[string]*client),
	}
}

// Info describes the outcome of a rate limit check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Allow consumes a token for clientID if one is available.
func (l *Limiter) Allow(clientID string) Info {
	if !l.cfg.Enabled || l.cfg.RequestsPerMinute <= 0 || l.whitelist[clientID] {
		return Info{Allowed: true}
	}

	now := l.now()
	l.mu.Lock()
	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(float64(l.cfg.RequestsPerMinute)/60), l.cfg.Burst)}
		l.clients[clientID] = c
	}
	c.lastAccess = now
	l.mu.Unlock()

	info := Info{Limit: l.cfg.RequestsPerMinute}
	r := c.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}
	info.Remaining = max(int(c.limiter.TokensAt(now)), 0)
	return info
}

// Sweep forgets clients idle for longer than the configured TTL and returns how many were removed.
func (l *Limiter) Sweep() int {
	if l.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := l.now().Add(-l.cfg.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id, c := range l.clients {
		if c.lastAccess.Before(cutoff) {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}
