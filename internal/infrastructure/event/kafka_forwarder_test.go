package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func headerMap(msg *sarama.ProducerMessage) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[string(h.Key)] = string(h.Value)
	}
	return out
}

func TestKafkaForwarder_Handle(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()

	rec := testRecord()
	ev := stock.NewStockBelowThresholdEvent(rec)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "inventory-events", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, rec.ID.String(), string(key))

		headers := headerMap(msg)
		assert.Equal(t, stock.EventTypeStockBelowThreshold, headers["event_type"])
		assert.Equal(t, ev.EventID().String(), headers["event_id"])
		assert.Equal(t, "nakawa", headers["location"])

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(value, &body))
		assert.Equal(t, "Milk 500ml", body["product_name"])
		assert.EqualValues(t, 3, body["quantity_at_end"])
		return nil
	})

	f := NewKafkaForwarder(producer, "inventory-events", NewEventSerializer(), zap.NewNop())
	assert.Contains(t, f.EventTypes(), stock.EventTypeStockBelowThreshold)
	require.NoError(t, f.Handle(context.Background(), ev))
}

func TestKafkaForwarder_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))

	f := NewKafkaForwarder(producer, "inventory-events", NewEventSerializer(), zap.NewNop())
	err := f.Handle(context.Background(), stock.NewDayOpenedEvent(testRecord()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send DayOpened")
}

func TestKafkaForwarder_OnBus(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()

	f := NewKafkaForwarder(producer, "inventory-events", NewEventSerializer(), zap.NewNop())
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(f)

	rec := testRecord()
	require.NoError(t, bus.Publish(context.Background(),
		stock.NewEndingQuantityEditedEvent(rec),
		stock.NewDaySettledEvent(rec),
	))
	assert.Zero(t, bus.Failures())
	require.NoError(t, f.Close())
}
