package panel

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"

	"github.com/couchcryptid/weather-panel/internal/domain"
)

// radarRed sits inside the red rainfall band of the default level table.
var radarRed = color.RGBA{255, 40, 0, 255}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeUniform(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeTiles struct {
	tiles    map[domain.Variant][]byte
	err      error
	requests []domain.TileRequest
}

func (f *fakeTiles) FetchTile(_ context.Context, req domain.TileRequest) ([]byte, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.tiles[req.Variant], nil
}

type fakeForecast struct {
	entries []domain.ForecastEntry
	err     error
}

func (f *fakeForecast) FetchForecast(context.Context) ([]domain.ForecastEntry, error) {
	return f.entries, f.err
}

type fakeIcons struct {
	data []byte
	err  error
	urls []string
}

func (f *fakeIcons) FetchIcon(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.data, f.err
}

type nearestUpscaler struct{}

func (nearestUpscaler) Upsample(_ context.Context, img image.Image) (image.Image, error) {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*4, b.Dy()*4))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, img, b, xdraw.Src, nil)
	return dst, nil
}

func forecastDay(day int) domain.ForecastEntry {
	return domain.ForecastEntry{
		Date:         time.Date(2026, time.October, day, 0, 0, 0, 0, domain.JST),
		WeatherLabel: "晴れ",
		IconURL:      "https://example.test/icon.png",
		TempHigh:     25,
		TempLow:      15,
	}
}
