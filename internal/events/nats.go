// Package events publishes matching lifecycle events over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/types"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// SubjectMatchesCreated carries one MatchesCreated message per successful run.
const SubjectMatchesCreated = "vacancy.matches.created"

// MatchesCreated announces the matches persisted by a run.
type MatchesCreated struct {
	RequestID  uuid.UUID   `json:"request_id"`
	MatchIDs   []uuid.UUID `json:"match_ids"`
	ProfileIDs []uuid.UUID `json:"profile_ids"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewMatchesCreated builds the event for matches, preserving their priority order.
func NewMatchesCreated(requestID uuid.UUID, matches []types.Match, now time.Time) MatchesCreated {
	ev := MatchesCreated{
		RequestID:  requestID,
		MatchIDs:   make([]uuid.UUID, 0, len(matches)),
		ProfileIDs: make([]uuid.UUID, 0, len(matches)),
		CreatedAt:  now.UTC(),
	}
	for _, m := range matches {
		ev.MatchIDs = append(ev.MatchIDs, m.ID)
		ev.ProfileIDs = append(ev.ProfileIDs, m.ProfileID)
	}
	return ev
}

// Config holds NATS connection settings.
type Config struct {
	URL           string        // nats://localhost:4222
	Name          string        // client name for identification
	ReconnectWait time.Duration // time between reconnect attempts
	MaxReconnects int           // max reconnect attempts (-1 for infinite)
}

// DefaultConfig returns the connection defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Name:          "vacancy-matcher",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher implements matching.Publisher on a NATS connection.
type Publisher struct {
	conn   conn
	logger *zap.Logger
	now    func() time.Time
}

// NewPublisher connects to NATS with cfg and returns a ready publisher.
// It returns an error if the initial connection fails.
func NewPublisher(cfg Config, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("nats connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Info("nats connected", zap.String("url", nc.ConnectedUrl()))

	return newPublisher(nc, logger), nil
}

func newPublisher(c conn, logger *zap.Logger) *Publisher {
	return &Publisher{conn: c, logger: logger, now: time.Now}
}

// PublishMatchesCreated publishes a MatchesCreated event to SubjectMatchesCreated.
func (p *Publisher) PublishMatchesCreated(_ context.Context, requestID uuid.UUID, matches []types.Match) error {
	data, err := json.Marshal(NewMatchesCreated(requestID, matches, p.now()))
	if err != nil {
		return fmt.Errorf("marshal matches created event: %w", err)
	}
	if err := p.conn.Publish(SubjectMatchesCreated, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", SubjectMatchesCreated, err)
	}
	p.logger.Debug("published matches created event",
		zap.Stringer("request_id", requestID), zap.Int("matches", len(matches)))
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats connection drain", zap.Error(err))
	}
}
