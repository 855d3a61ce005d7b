package app

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/couchcryptid/weather-panel/internal/adapter/fixture"
	"github.com/couchcryptid/weather-panel/internal/config"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallConfig(fontDir string) *config.Config {
	return &config.Config{
		PanelWidth:     400,
		PanelHeight:    800,
		RadarURL:       "https://example.test/radar",
		RadarWidth:     400,
		RadarHeight:    200,
		ForecastURL:    "https://example.test/forecast",
		ForecastWidth:  400,
		ForecastHeight: 600,
		ToneStep:       32,
		IconGamma:      0.24,
		IconScale:      1.6,
		RingDiameter:   120,
		RingStroke:     3,
		FontDir:        fontDir,
		Fonts: config.FontFiles{
			JPMedium:  "jp-medium.ttf",
			JPRegular: "jp-regular.ttf",
			JPBold:    "jp-bold.ttf",
			ENHeavy:   "en-heavy.ttf",
			ENMedium:  "en-medium.ttf",
			ENBold:    "en-bold.ttf",
		},
	}
}

func TestPanelConfig(t *testing.T) {
	cfg := smallConfig("")
	pc := PanelConfig(cfg)

	assert.Equal(t, 400, pc.Width)
	assert.Equal(t, 800, pc.Height)
	assert.Equal(t, "https://example.test/radar", pc.Radar.URL)
	assert.Equal(t, 200, pc.Radar.Height)
	assert.Len(t, pc.Radar.SubPanels, 2)
	assert.InDelta(t, 120, pc.Radar.Overlay.RingDiameter, 1e-9)
	assert.InDelta(t, 3, pc.Radar.Overlay.RingStroke, 1e-9)
	assert.Equal(t, 600, pc.Forecast.Height)
	assert.Equal(t, 32, pc.Forecast.Icon.ToneStep)
	assert.InDelta(t, 0.24, pc.Forecast.Icon.Gamma, 1e-9)
	assert.InDelta(t, 1.6, pc.Forecast.Icon.Scale, 1e-9)
}

func TestLoadFaces_MissingDirFallsBack(t *testing.T) {
	faces := LoadFaces(smallConfig(filepath.Join(t.TempDir(), "missing")), discardLogger())

	assert.Equal(t, basicfont.Face7x13, faces.Panel.Caption)
	assert.Equal(t, basicfont.Face7x13, faces.Panel.Temp)
	assert.Nil(t, faces.Error.Title)
}

func TestLoadFaces_LoadsEveryRole(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig(dir)
	for _, name := range []string{
		cfg.Fonts.JPMedium, cfg.Fonts.JPRegular, cfg.Fonts.JPBold,
		cfg.Fonts.ENHeavy, cfg.Fonts.ENMedium, cfg.Fonts.ENBold,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0o600))
	}

	faces := LoadFaces(cfg, discardLogger())

	require.NotNil(t, faces.Panel.Date)
	require.NotNil(t, faces.Error.Title)
	assert.NotEqual(t, basicfont.Face7x13, faces.Panel.Date)
	assert.Greater(t, faces.Error.Title.Metrics().Height.Ceil(), faces.Panel.Weekday.Metrics().Height.Ceil())
}

func TestNewRenderer_RendersFixtures(t *testing.T) {
	start := time.Date(2026, time.October, 18, 0, 0, 0, 0, domain.JST)
	domain.SetClock(clockwork.NewFakeClockAt(start))
	t.Cleanup(func() { domain.SetClock(nil) })

	root := t.TempDir()
	require.NoError(t, fixture.Generate(root, fixture.Options{TileWidth: 200, TileHeight: 200, Days: 3, Start: start}))

	cfg := smallConfig(filepath.Join(root, "no-fonts"))
	r := NewRenderer(cfg, FixtureCollaborators(root), LoadFaces(cfg, discardLogger()), discardLogger(), observability.NewMetricsForTesting())

	img, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 800), img.Bounds())

	// Icons are drawn in the forecast area, so it is not blank.
	var dark int
	for y := 800 - 600 + 130; y < 800-600+200; y++ {
		for x := 0; x < 400; x++ {
			if img.GrayAt(x, y).Y < 0x80 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)
}
