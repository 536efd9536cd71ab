package events

import (
	"context"
	"fmt"

	"bulkmart/internal/config"

	"github.com/rs/zerolog"
)

// NewPublisher builds the publisher for the configured broker.
func NewPublisher(ctx context.Context, cfg config.EventsConfig, logger zerolog.Logger) (Publisher, error) {
	switch cfg.Broker {
	case "", config.BrokerNone:
		logger.Info().Msg("event publishing disabled")
		return Nop(), nil
	case config.BrokerRedis:
		return NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel, logger)
	case config.BrokerKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	case config.BrokerRabbitMQ:
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
	default:
		return nil, fmt.Errorf("unknown events broker %q", cfg.Broker)
	}
}
