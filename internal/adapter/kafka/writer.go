package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/agorai/climate-profiler/internal/config"
	"github.com/agorai/climate-profiler/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes zone documents to a Kafka topic.
// It implements pipeline.ProfileSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// WriteBatch publishes one message per zone, keyed by zone id, in a single
// WriteMessages call. Zones are emitted in sorted id order so repeated runs
// produce the same message sequence.
func (w *Writer) WriteBatch(ctx context.Context, doc domain.BatchDocument) error {
	if len(doc.Zones) == 0 {
		return nil
	}
	ids := make([]string, 0, len(doc.Zones))
	for id := range doc.Zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	msgs := make([]kafkago.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := serializeZoneDocument(id, doc.Zones[id], doc.Metadata.GeneratedAt)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish zone documents: %w", err)
	}
	w.logger.Info("published zone documents", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeZoneDocument marshals a ZoneDocument into a Kafka message.
func serializeZoneDocument(id string, zone domain.ZoneDocument, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(zone)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize zone document %q: %w", id, err)
	}
	return kafkago.Message{
		Key:   []byte(id),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "zone_name", Value: []byte(zone.ZoneName)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
