// Package kafka publishes nearby-event snapshots to a Kafka topic for
// downstream consumers (map renderers, notifiers).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-watch/internal/config"
	"github.com/couchcryptid/quake-watch/internal/domain"
	"github.com/couchcryptid/quake-watch/internal/scheduler"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces one message per nearby event to the sink topic.
// It implements scheduler.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes the snapshot's events and writes them in a single
// WriteMessages call. A snapshot with no events produces no messages.
func (p *Publisher) Publish(ctx context.Context, snap scheduler.Snapshot) error {
	if len(snap.Events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(snap.Events))
	for i, event := range snap.Events {
		msg, err := serializeToMessage(event, snap)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish snapshot %d: %w", snap.Cycle, err)
	}
	p.logger.Debug("snapshot published to kafka", "cycle", snap.Cycle, "messages", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a nearby event into a Kafka message keyed by
// event id, so downstream compaction collapses repeated sightings.
func serializeToMessage(event domain.NearbyEvent, snap scheduler.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize nearby event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(event.Severity)},
			{Key: "cycle", Value: []byte(strconv.FormatUint(snap.Cycle, 10))},
			{Key: "fetched_at", Value: []byte(snap.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
