package events

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Channel is the part of an AMQP channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitPublisher publishes events to a topic exchange with the event type as routing key.
type rabbitPublisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
	logger   zerolog.Logger
}

// NewRabbitMQPublisher dials the broker and declares a durable topic exchange.
func NewRabbitMQPublisher(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info().Str("exchange", exchange).Msg("rabbitmq event publisher ready")

	p := NewRabbitMQPublisherWithChannel(channel, exchange, logger).(*rabbitPublisher)
	p.conn = conn
	return p, nil
}

// NewRabbitMQPublisherWithChannel wraps an existing channel.
func NewRabbitMQPublisherWithChannel(channel Channel, exchange string, logger zerolog.Logger) Publisher {
	return &rabbitPublisher{
		channel:  channel,
		exchange: exchange,
		logger:   logger.With().Str("publisher", "rabbitmq").Logger(),
	}
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to exchange %s with routing key %s: %w", p.exchange, event.Type, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("type", event.Type).
		Msg("event published")

	return nil
}

func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
