// ABOUTME: Kafka analytics sink publishes events as JSON messages
// ABOUTME: Events are keyed by name so one event type stays on one partition

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"headlines-api/core/domain"

	"github.com/IBM/sarama"
)

// Producer is the part of sarama.SyncProducer the sink needs
type Producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}

// Config holds Kafka producer configuration
type Config struct {
	Brokers []string
	Topic   string
}

// Sink implements interfaces.AnalyticsSink on top of a Kafka producer
type Sink struct {
	producer Producer
	topic    string
}

// NewSink dials the brokers and returns a sink publishing to cfg.Topic
func NewSink(cfg Config) (*Sink, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, errors.New("kafka brokers and topic are required")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewSinkWithProducer(producer, cfg.Topic), nil
}

// NewSinkWithProducer wraps an existing producer
func NewSinkWithProducer(producer Producer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

// Track publishes one event
func (s *Sink) Track(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(event.Name),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Name, err)
	}
	return nil
}

// Close releases the producer
func (s *Sink) Close() error {
	return s.producer.Close()
}
