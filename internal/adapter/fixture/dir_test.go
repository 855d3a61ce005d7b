package fixture

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-panel/internal/domain"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	p := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o600))
}

func TestDir_FetchTile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "radar_next_hour.png", []byte("next"))

	data, err := NewDir(root).FetchTile(context.Background(), domain.TileRequest{Variant: domain.VariantNextHour})
	require.NoError(t, err)
	assert.Equal(t, []byte("next"), data)

	_, err = NewDir(root).FetchTile(context.Background(), domain.TileRequest{Variant: domain.VariantCurrent})
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDir_FetchForecast(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.December, 30, 3, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	root := t.TempDir()
	table, err := json.Marshal(Table{Columns: []domain.ForecastCells{
		{Date: "12月31日(木)", WeatherAlt: "晴れ", WeatherSrc: "https://fixtures.invalid/size90/sunny.png", Temperature: "9\n1", Precipitation: "0"},
		{Date: "1月1日(金)", WeatherAlt: "雪", WeatherSrc: "https://fixtures.invalid/size90/snow.png", Temperature: "3\n-2", Precipitation: "60"},
	}})
	require.NoError(t, err)
	writeFile(t, root, ForecastFile, table)

	entries, err := NewDir(root).FetchForecast(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, domain.JST), entries[0].Date)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, domain.JST), entries[1].Date)
	assert.Equal(t, "https://fixtures.invalid/size150/snow.png", entries[1].IconURL)
	assert.Equal(t, -2, entries[1].TempLow)
}

func TestDir_FetchForecast_Malformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ForecastFile, []byte("{"))

	_, err := NewDir(root).FetchForecast(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestDir_FetchIcon(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "icons/sunny.png", []byte("sun"))

	data, err := NewDir(root).FetchIcon(context.Background(), "https://fixtures.invalid/size150/sunny.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("sun"), data)

	_, err = NewDir(root).FetchIcon(context.Background(), "https://fixtures.invalid/size150/rain.png")
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestDir_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDir(t.TempDir()).FetchTile(ctx, domain.TileRequest{Variant: domain.VariantCurrent})
	assert.ErrorIs(t, err, context.Canceled)
}
