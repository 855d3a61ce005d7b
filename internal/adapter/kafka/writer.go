package kafka

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/domain"
)

// frameKey is the message key of every frame. With a compacted topic the
// broker keeps only the latest panel.
const frameKey = "panel"

// maxFrameBytes bounds one produced message. A grayscale PNG of a full panel
// is well under this.
const maxFrameBytes = 8 << 20

// Writer publishes rendered frames to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured frame topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchBytes:   maxFrameBytes,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Publish writes one frame. The PNG is the message value; metadata travels in
// headers so consumers can skip frames without decoding them.
func (w *Writer) Publish(ctx context.Context, f domain.Frame) error {
	if err := w.writer.WriteMessages(ctx, frameMessage(f)); err != nil {
		return err
	}
	w.logger.Debug("frame published", "render_id", f.ID, "bytes", len(f.PNG))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// frameMessage maps a frame onto a Kafka message.
func frameMessage(f domain.Frame) kafkago.Message {
	status := "ok"
	if f.Failed() {
		status = "error"
	}
	return kafkago.Message{
		Key:   []byte(frameKey),
		Value: f.PNG,
		Time:  f.RenderedAt,
		Headers: []kafkago.Header{
			{Key: "render_id", Value: []byte(f.ID)},
			{Key: "rendered_at", Value: []byte(f.RenderedAt.Format(time.RFC3339))},
			{Key: "content_type", Value: []byte("image/png")},
			{Key: "width", Value: []byte(strconv.Itoa(f.Width))},
			{Key: "height", Value: []byte(strconv.Itoa(f.Height))},
			{Key: "status", Value: []byte(status)},
		},
	}
}
