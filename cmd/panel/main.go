package main

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-panel/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-panel/internal/adapter/kafka"
	"github.com/couchcryptid/weather-panel/internal/app"
	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/observability"
	"github.com/couchcryptid/weather-panel/internal/panel"
	"github.com/couchcryptid/weather-panel/internal/pipeline"
	"github.com/couchcryptid/weather-panel/internal/sink"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	faces := app.LoadFaces(cfg, logger)
	renderer := app.NewRenderer(cfg, app.RemoteCollaborators(cfg, logger, metrics), faces, logger, metrics)

	latest := sink.NewLatest()
	publishers := []pipeline.Publisher{latest}

	// Kafka publishing is feature-flagged via KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publishers = append(publishers, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(renderer, publishers, logger, metrics, pipeline.Options{
		Interval: cfg.RenderInterval,
		Fallback: func(err error) *image.Gray {
			return panel.ErrorImage(cfg.PanelWidth, cfg.PanelHeight, err, faces.Error)
		},
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, latest, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start render loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
