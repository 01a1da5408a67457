package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/atmledger/internal/domain"
	"github.com/iho/atmledger/internal/usecase"
)

// Publisher delivers a state change to an external system.
type Publisher interface {
	Publish(ctx context.Context, change domain.StateChange) error
}

// EventPublisher queues ledger state changes and fans them out to
// publishers from a background worker, so a slow or failing publisher
// never blocks or fails a ledger call.
type EventPublisher struct {
	publishers     []Publisher
	queue          chan domain.StateChange
	logger         zerolog.Logger
	publishTimeout time.Duration
}

// Config for EventPublisher.
type Config struct {
	Publishers     []Publisher
	Logger         zerolog.Logger
	BufferSize     int           // Changes held while publishers catch up
	PublishTimeout time.Duration // Per publish call
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 256
	}
	if cfg.PublishTimeout == 0 {
		cfg.PublishTimeout = 2 * time.Second
	}

	return &EventPublisher{
		publishers:     cfg.Publishers,
		queue:          make(chan domain.StateChange, cfg.BufferSize),
		logger:         cfg.Logger,
		publishTimeout: cfg.PublishTimeout,
	}
}

// Observer returns the ledger observer that feeds this publisher.
// When the buffer is full the change is dropped and logged.
func (ep *EventPublisher) Observer() usecase.Observer {
	return func(change domain.StateChange) {
		select {
		case ep.queue <- change:
		default:
			ep.logger.Warn().
				Str("event_type", change.EventType).
				Msg("event buffer full, dropping state change")
		}
	}
}

// Start publishes queued changes until ctx is cancelled. Changes still
// queued at cancellation are flushed before it returns.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("publishers", len(ep.publishers)).
		Int("buffer", cap(ep.queue)).
		Msg("event publisher started")

	for {
		select {
		case <-ctx.Done():
			ep.flush()
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case change := <-ep.queue:
			ep.publish(context.Background(), change)
		}
	}
}

func (ep *EventPublisher) flush() {
	for {
		select {
		case change := <-ep.queue:
			ep.publish(context.Background(), change)
		default:
			return
		}
	}
}

func (ep *EventPublisher) publish(ctx context.Context, change domain.StateChange) {
	for _, p := range ep.publishers {
		pctx, cancel := context.WithTimeout(ctx, ep.publishTimeout)
		err := p.Publish(pctx, change)
		cancel()

		if err != nil {
			// Continue with the remaining publishers even if one fails
			ep.logger.Error().
				Err(err).
				Str("event_type", change.EventType).
				Msg("failed to publish state change")
		}
	}
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the change.
func (p *LogPublisher) Publish(ctx context.Context, change domain.StateChange) error {
	evt := p.logger.Info().
		Str("event_type", change.EventType).
		Int64("cash", change.Account.Cash).
		Int64("balance", change.Account.Balance).
		Int64("total_assets", change.TotalAssets).
		Time("occurred_at", change.OccurredAt)
	if change.Record != nil {
		evt = evt.
			Str("record_id", change.Record.ID).
			Int64("amount", change.Record.Amount)
	}
	evt.Msg("EVENT PUBLISHED")

	return nil
}

// RedisPublisher publishes changes as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish sends the change to the channel.
func (p *RedisPublisher) Publish(ctx context.Context, change domain.StateChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, payload).Err()
}
