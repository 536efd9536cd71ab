package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher publishes events to a kafka topic keyed by order ID,
// so every event of one order lands on the same partition.
type kafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger zerolog.Logger
}

// NewKafkaPublisher creates a synchronous kafka writer for topic.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
	}

	logger.Info().Strs("brokers", brokers).Str("topic", topic).Msg("kafka event publisher ready")

	return NewKafkaPublisherWithWriter(writer, topic, logger)
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(writer MessageWriter, topic string, logger zerolog.Logger) Publisher {
	return &kafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("publisher", "kafka").Logger(),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("type", event.Type).
		Msg("event published")

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
