package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
)

// Kafka produces events asynchronously to a single topic, keyed by user id so
// one user's events stay ordered within a partition.
type Kafka struct {
	client  *kgo.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

var _ Publisher = (*Kafka)(nil)

// NewKafka connects a producer to brokers. The client dials lazily, so an
// unreachable cluster surfaces as delivery errors rather than here.
func NewKafka(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RecordRetries(5),
		kgo.ClientID("aarthik-be"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, logger: logger, metrics: m}, nil
}

// Emit queues e for delivery. Delivery failures are logged and counted.
func (k *Kafka) Emit(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.Type, err)
	}
	record := &kgo.Record{
		Key:   []byte(strconv.FormatInt(e.UserID, 10)),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "event_id", Value: []byte(e.ID)},
		},
	}
	// Delivery must outlive the request that triggered it.
	k.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			k.metrics.IncrementEventsPublished("error")
			k.logger.ErrorContext(ctx, "event delivery failed",
				"event_type", e.Type,
				"event_id", e.ID,
				"topic", r.Topic,
				"error", err,
			)
			return
		}
		k.metrics.IncrementEventsPublished("ok")
	})
	return nil
}

// Close flushes buffered records and shuts the client down.
func (k *Kafka) Close(ctx context.Context) error {
	err := k.client.Flush(ctx)
	k.client.Close()
	if err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	return nil
}
