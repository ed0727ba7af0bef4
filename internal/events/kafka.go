// Package events publishes note lifecycle events to a Kafka topic.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/reosaurous172214/xnote-server/internal/model"
)

var _ model.EventPublisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	producer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	producer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaPublisher{producer: producer}
}

// Publish sends one event keyed by note id, JSON encoded.
func (p *KafkaPublisher) Publish(ctx context.Context, event model.NoteEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal note event: %w", err)
	}

	var key []byte
	if event.Note != nil {
		key = []byte(event.Note.ID.String())
	}

	if err := p.producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to send message to kafka: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
