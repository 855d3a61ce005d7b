package panel

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-panel/internal/compose"
	"github.com/couchcryptid/weather-panel/internal/observability"
)

// Config describes the device canvas. The radar panel sits at the top and the
// forecast panel directly below it.
type Config struct {
	Width    int
	Height   int
	Radar    RadarConfig
	Forecast ForecastConfig
}

// Renderer produces one complete device image per call.
type Renderer struct {
	cfg      Config
	radar    *RadarPanel
	forecast *ForecastPanel
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewRenderer(cfg Config, radar *RadarPanel, forecast *ForecastPanel, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		cfg:      cfg,
		radar:    radar,
		forecast: forecast,
		logger:   logger,
		metrics:  metrics,
	}
}

// Render runs one synchronous pass. Any collaborator or processing failure
// aborts the pass; callers decide on a fallback image.
func (r *Renderer) Render(ctx context.Context) (*image.Gray, error) {
	var radarImg, forecastImg *image.Gray
	err := r.stage("radar", func() (err error) {
		radarImg, err = r.radar.Render(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = r.stage("forecast", func() (err error) {
		forecastImg, err = r.forecast.Render(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	var out *image.Gray
	err = r.stage("compose", func() (err error) {
		out, err = compose.Compose(compose.Layout{
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Placements: []compose.Placement{
				{Name: "radar", Panel: radarImg, Offset: image.Pt(0, 0), Size: r.radar.Size()},
				{Name: "forecast", Panel: forecastImg, Offset: image.Pt(0, r.cfg.Radar.Height), Size: r.forecast.Size()},
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Renderer) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		return fmt.Errorf("%s panel: %w", name, err)
	}
	r.logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return nil
}
