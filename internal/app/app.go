// Package app wires configuration, collaborators and fonts into a panel
// renderer. Both binaries build their renderer here.
package app

import (
	"log/slog"

	"golang.org/x/image/font"

	"github.com/couchcryptid/weather-panel/internal/adapter/browser"
	"github.com/couchcryptid/weather-panel/internal/adapter/fetch"
	"github.com/couchcryptid/weather-panel/internal/adapter/fixture"
	"github.com/couchcryptid/weather-panel/internal/adapter/fonts"
	"github.com/couchcryptid/weather-panel/internal/adapter/icons"
	"github.com/couchcryptid/weather-panel/internal/adapter/upscale"
	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/icon"
	"github.com/couchcryptid/weather-panel/internal/observability"
	"github.com/couchcryptid/weather-panel/internal/overlay"
	"github.com/couchcryptid/weather-panel/internal/panel"
)

// Collaborators are the external services one render pass depends on.
type Collaborators struct {
	Tiles    domain.TileFetcher
	Forecast domain.ForecastSource
	Icons    domain.IconFetcher
	Upscaler icon.Upscaler
}

// RemoteCollaborators talks to the browser service, the icon host and, when
// configured, the upscaler service.
func RemoteCollaborators(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) Collaborators {
	b := browser.NewClient(cfg.BrowserURL, fetch.New("browser", cfg.BrowserTimeout, logger, metrics))
	iconClient := icons.NewClient(fetch.New("icon", cfg.IconTimeout, logger, metrics))

	var up icon.Upscaler = upscale.Resampler{}
	if cfg.UpscalerURL != "" {
		up = upscale.NewClient(cfg.UpscalerURL, fetch.New("upscaler", cfg.UpscalerTimeout, logger, metrics))
	} else {
		logger.Info("no upscaler configured, resampling icons locally")
	}

	return Collaborators{
		Tiles:    b,
		Forecast: b.Forecast(cfg.ForecastURL),
		Icons:    icons.NewCachedFetcher(iconClient, cfg.IconCacheSize, metrics),
		Upscaler: up,
	}
}

// FixtureCollaborators reads everything from a fixture directory.
func FixtureCollaborators(dir string) Collaborators {
	d := fixture.NewDir(dir)
	return Collaborators{Tiles: d, Forecast: d, Icons: d, Upscaler: upscale.Resampler{}}
}

// PanelConfig maps the environment configuration onto the panel layout.
func PanelConfig(cfg *config.Config) panel.Config {
	r := panel.DefaultRadarConfig(cfg.RadarURL, cfg.RadarWidth, cfg.RadarHeight)
	r.Overlay.RingDiameter = cfg.RingDiameter
	r.Overlay.RingStroke = cfg.RingStroke

	f := panel.DefaultForecastConfig(cfg.ForecastWidth, cfg.ForecastHeight)
	f.Icon = icon.Config{ToneStep: cfg.ToneStep, Gamma: cfg.IconGamma, Scale: cfg.IconScale}

	return panel.Config{
		Width:    cfg.PanelWidth,
		Height:   cfg.PanelHeight,
		Radar:    r,
		Forecast: f,
	}
}

// Faces are the loaded font faces for normal and error frames.
type Faces struct {
	Panel panel.Faces
	Error panel.ErrorFaces
}

// LoadFaces loads the configured fonts. When they cannot be loaded the
// built-in bitmap face is used and a warning is logged, so a missing font
// directory still yields a readable error frame.
func LoadFaces(cfg *config.Config, logger *slog.Logger) Faces {
	set, err := fonts.Load(cfg.FontDir, map[string]string{
		fonts.JPMedium:  cfg.Fonts.JPMedium,
		fonts.JPRegular: cfg.Fonts.JPRegular,
		fonts.JPBold:    cfg.Fonts.JPBold,
		fonts.ENHeavy:   cfg.Fonts.ENHeavy,
		fonts.ENMedium:  cfg.Fonts.ENMedium,
		fonts.ENBold:    cfg.Fonts.ENBold,
	})
	if err != nil {
		logger.Warn("fonts unavailable, using built-in face", "dir", cfg.FontDir, "error", err)
		return Faces{Panel: panel.FallbackFaces()}
	}

	faces, err := buildFaces(set)
	if err != nil {
		logger.Warn("font face setup failed, using built-in face", "error", err)
		return Faces{Panel: panel.FallbackFaces()}
	}
	return faces
}

func buildFaces(set *fonts.Set) (Faces, error) {
	specs := []struct {
		role string
		size float64
	}{
		{fonts.JPMedium, 50},  // caption
		{fonts.ENHeavy, 80},   // date
		{fonts.JPRegular, 40}, // weekday
		{fonts.JPBold, 40},    // weather
		{fonts.ENMedium, 70},  // temperature
		{fonts.ENBold, 160},   // error title
		{fonts.ENMedium, 40},  // error body
	}
	var out Faces
	targets := []*font.Face{
		&out.Panel.Caption,
		&out.Panel.Date,
		&out.Panel.Weekday,
		&out.Panel.Weather,
		&out.Panel.Temp,
		&out.Error.Title,
		&out.Error.Body,
	}
	for i, s := range specs {
		f, err := set.Face(s.role, s.size)
		if err != nil {
			return Faces{}, err
		}
		*targets[i] = f
	}
	return out, nil
}

// NewRenderer assembles the radar and forecast panels into a renderer.
func NewRenderer(cfg *config.Config, c Collaborators, faces Faces, logger *slog.Logger, metrics *observability.Metrics) *panel.Renderer {
	pc := PanelConfig(cfg)
	text := overlay.FontRenderer{}
	radarPanel := panel.NewRadarPanel(pc.Radar, c.Tiles, text, faces.Panel.Caption)
	forecastPanel := panel.NewForecastPanel(pc.Forecast, c.Forecast, c.Icons, c.Upscaler, text, faces.Panel)
	return panel.NewRenderer(pc, radarPanel, forecastPanel, logger, metrics)
}
