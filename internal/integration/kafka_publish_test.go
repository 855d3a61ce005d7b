//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/weather-panel/internal/adapter/kafka"
	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
	"github.com/couchcryptid/weather-panel/internal/pipeline"
	"github.com/couchcryptid/weather-panel/internal/sink"
)

const testTopic = "test-frames"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("weather-panel-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func readFrame(ctx context.Context, t *testing.T, broker string) kafkago.Message {
	t.Helper()
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MaxBytes:  16 << 20,
	})
	t.Cleanup(func() { _ = reader.Close() })

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err, "read from frame topic")
	return msg
}

type stripeRenderer struct{}

func (stripeRenderer) Render(context.Context) (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 32)})
		}
	}
	return img, nil
}

// TestPipelinePublishesFrame runs one render pass through the pipeline with
// the Kafka writer and the in-memory sink, then reads the frame back.
func TestPipelinePublishesFrame(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	latest := sink.NewLatest()

	p := pipeline.New(stripeRenderer{}, []pipeline.Publisher{writer, latest}, discardLogger(),
		observability.NewMetricsForTesting(), pipeline.Options{})

	frame, err := p.RenderOnce(ctx)
	require.NoError(t, err)

	msg := readFrame(ctx, t, broker)
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	assert.Equal(t, "panel", string(msg.Key))
	assert.Equal(t, frame.ID, headers["render_id"])
	assert.Equal(t, "8", headers["width"])
	assert.Equal(t, "4", headers["height"])
	assert.Equal(t, "ok", headers["status"])

	img, err := png.Decode(bytes.NewReader(msg.Value))
	require.NoError(t, err)
	assert.Equal(t, color.Gray{Y: 96}, img.At(3, 2))

	held, ok := latest.Frame()
	require.True(t, ok)
	assert.Equal(t, msg.Value, held.PNG)
}

// TestWriterPublishesErrorFrame checks the status header of a fallback frame.
func TestWriterPublishesErrorFrame(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	writer := kafka.NewWriter(&config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.Publish(ctx, domain.Frame{
		ID:         "failed-pass",
		RenderedAt: time.Now(),
		PNG:        []byte{0x89, 'P', 'N', 'G'},
		Err:        "radar panel: timeout",
	}))

	msg := readFrame(ctx, t, broker)
	var status string
	for _, h := range msg.Headers {
		if h.Key == "status" {
			status = string(h.Value)
		}
	}
	assert.Equal(t, "error", status)
}
