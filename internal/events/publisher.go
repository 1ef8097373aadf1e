// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

const eventTypeHeader = "event-type"

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafka(brokers []string, topic string) (port.EventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("brokers are empty")
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewSyncProducer: %w", err)
	}

	return NewKafkaWithProducer(producer, topic)
}

func NewKafkaWithProducer(producer sarama.SyncProducer, topic string) (port.EventPublisher, error) {
	if producer == nil {
		return nil, errors.New("producer is nil")
	}
	if topic == "" {
		return nil, errors.New("topic is empty")
	}

	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
	}, nil
}

// Publish keys messages by order id so events of one order stay ordered within a partition.
func (p *kafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ctx.Err: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(eventTypeHeader), Value: []byte(event.Type)},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("producer.SendMessage: %w", err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoop discards events, used when no brokers are configured.
func NewNoop() port.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, domain.Event) error { return nil }

func (noopPublisher) Close() error { return nil }
