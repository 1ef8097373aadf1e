package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	event := domain.Event{
		Type:       domain.EventOrderPaid,
		OrderID:    42,
		UserID:     "u1",
		PaymentID:  7,
		TotalCents: 1998,
		Currency:   "USD",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got domain.Event
		require.NoError(t, json.Unmarshal(val, &got))
		assert.Equal(t, event, got)
		return nil
	})

	publisher, err := events.NewKafkaWithProducer(producer, "orders")
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(t.Context(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_PublishFails(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher, err := events.NewKafkaWithProducer(producer, "orders")
	require.NoError(t, err)

	err = publisher.Publish(t.Context(), domain.Event{Type: domain.EventOrderCreated, OrderID: 1})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestNewKafkaWithProducer_Validation(t *testing.T) {
	_, err := events.NewKafkaWithProducer(nil, "orders")
	require.EqualError(t, err, "producer is nil")

	producer := mocks.NewSyncProducer(t, nil)
	_, err = events.NewKafkaWithProducer(producer, "")
	require.EqualError(t, err, "topic is empty")
	require.NoError(t, producer.Close())

	_, err = events.NewKafka(nil, "orders")
	require.EqualError(t, err, "brokers are empty")
}

func TestNoopPublisher(t *testing.T) {
	publisher := events.NewNoop()
	require.NoError(t, publisher.Publish(t.Context(), domain.Event{Type: domain.EventOrderCreated}))
	require.NoError(t, publisher.Close())
}
