package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisClient is the part of the go-redis client the publisher needs.
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// redisPublisher publishes events on a redis pub/sub channel.
type redisPublisher struct {
	client  RedisClient
	channel string
	logger  zerolog.Logger
}

// NewRedisPublisher connects to redis and returns a publisher on channel.
func NewRedisPublisher(ctx context.Context, addr, password string, db int, channel string, logger zerolog.Logger) (Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info().Str("addr", addr).Str("channel", channel).Msg("redis event publisher ready")

	return NewRedisPublisherWithClient(client, channel, logger), nil
}

// NewRedisPublisherWithClient wraps an existing client.
func NewRedisPublisherWithClient(client RedisClient, channel string, logger zerolog.Logger) Publisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With().Str("publisher", "redis").Logger(),
	}
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", p.channel, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("type", event.Type).
		Int64("receivers", receivers).
		Msg("event published")

	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}
