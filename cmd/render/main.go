// Command render performs a single render pass and writes the panel PNG.
// A failed pass still produces an image: the error frame.
//
// Usage:
//
//	go run ./cmd/render -o panel.png
//	go run ./cmd/render -fixtures data/mock -o panel.png
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-panel/internal/app"
	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/observability"
	"github.com/couchcryptid/weather-panel/internal/panel"
	"github.com/couchcryptid/weather-panel/internal/pipeline"
	"github.com/couchcryptid/weather-panel/internal/sink"
)

func main() {
	out := flag.String("o", "-", "output file, - for stdout")
	fixtures := flag.String("fixtures", "", "render from a fixture directory instead of the live collaborators")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	collab := app.RemoteCollaborators(cfg, logger, metrics)
	if *fixtures != "" {
		collab = app.FixtureCollaborators(*fixtures)
		logger.Info("rendering from fixtures", "dir", *fixtures)
	}
	faces := app.LoadFaces(cfg, logger)
	renderer := app.NewRenderer(cfg, collab, faces, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	img, err := renderer.Render(ctx)
	if err != nil {
		logger.Error("render failed", "error", err, "outcome", pipeline.Outcome(err))
		img = panel.ErrorImage(cfg.PanelWidth, cfg.PanelHeight, err, faces.Error)
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("failed to create output", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := sink.PNG(w, img); err != nil {
		logger.Error("failed to write png", "error", err)
		os.Exit(1) //nolint:gocritic // deferred close is best effort
	}
	logger.Info("panel written", "path", *out, "width", img.Rect.Dx(), "height", img.Rect.Dy())
}
