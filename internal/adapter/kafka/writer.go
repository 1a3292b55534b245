package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/incident-viz/internal/adapter/geojson"
	"github.com/couchcryptid/incident-viz/internal/config"
	"github.com/couchcryptid/incident-viz/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes exported features to a Kafka topic, one message per feature.
// It implements pipeline.FeaturePublisher.
type Writer struct {
	writer    messageWriter
	batchSize int
	logger    *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, batchSize: cfg.BatchSize, logger: logger}
}

// PublishFeatures serializes features and writes them in chunks of the
// configured batch size. Messages are keyed by feature ID so a re-run lands
// each incident on the same partition.
func (w *Writer) PublishFeatures(ctx context.Context, features []domain.GeoFeature) error {
	if len(features) == 0 {
		return nil
	}
	size := w.batchSize
	if size <= 0 {
		size = len(features)
	}

	for start := 0; start < len(features); start += size {
		end := min(start+size, len(features))
		msgs := make([]kafkago.Message, 0, end-start)
		for _, f := range features[start:end] {
			msg, err := serializeToMessage(f)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("publish features %d-%d: %w", start, end-1, err)
		}
		w.logger.Debug("feature batch published", "from", start, "to", end-1)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage encodes a feature as a standalone GeoJSON Feature message.
func serializeToMessage(f domain.GeoFeature) (kafkago.Message, error) {
	data, err := geojson.MarshalFeature(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize feature %d: %w", f.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(f.ID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(f.Properties.Title)},
			{Key: "date", Value: []byte(f.Properties.Date)},
		},
	}, nil
}
