package event

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// KafkaForwarder publishes every domain event to a Kafka topic.
// Messages are keyed by aggregate id so all events of one record land on one partition.
type KafkaForwarder struct {
	producer   sarama.SyncProducer
	topic      string
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewKafkaProducer creates a synchronous producer that waits for all in-sync replicas
func NewKafkaProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = 3
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// NewKafkaForwarder creates a forwarder on an existing producer
func NewKafkaForwarder(producer sarama.SyncProducer, topic string, serializer *EventSerializer, logger *zap.Logger) *KafkaForwarder {
	return &KafkaForwarder{producer: producer, topic: topic, serializer: serializer, logger: logger}
}

// EventTypes are the types the serializer can encode
func (f *KafkaForwarder) EventTypes() []string {
	return f.serializer.RegisteredTypes()
}

// Handle publishes ev with its type, id, location and trace context as headers
func (f *KafkaForwarder) Handle(ctx context.Context, ev shared.DomainEvent) error {
	ctx, span := otel.Tracer("retail-backend/kafka").Start(ctx, "kafka.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", f.topic),
			attribute.String("event.type", ev.EventType()),
			attribute.String("event.id", ev.EventID().String()),
		),
	)
	defer span.End()

	payload, err := f.serializer.Serialize(ev)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal failed")
		return fmt.Errorf("failed to marshal %s: %w", ev.EventType(), err)
	}

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(ev.EventType())},
		{Key: []byte("event_id"), Value: []byte(ev.EventID().String())},
		{Key: []byte("location"), Value: []byte(ev.Location())},
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := f.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   f.topic,
		Key:     sarama.StringEncoder(ev.AggregateID().String()),
		Value:   sarama.ByteEncoder(payload),
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return fmt.Errorf("failed to send %s to Kafka: %w", ev.EventType(), err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	f.logger.Debug("Event forwarded",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close closes the producer
func (f *KafkaForwarder) Close() error {
	return f.producer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
