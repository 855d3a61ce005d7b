// Package fixture serves render collaborators from files on disk so a panel
// can be rendered without the browser service or network access. The layout
// is the one cmd/genmock writes.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/couchcryptid/weather-panel/internal/domain"
)

// File names inside a fixture directory.
const (
	ForecastFile = "forecast.json"
	IconDir      = "icons"
)

// TileFile is the radar screenshot for variant.
func TileFile(v domain.Variant) string {
	return "radar_" + string(v) + ".png"
}

// Table is the forecast table as the browser service returns it.
type Table struct {
	Columns []domain.ForecastCells `json:"columns"`
}

// Dir implements domain.TileFetcher, domain.ForecastSource and
// domain.IconFetcher over a fixture directory.
type Dir struct {
	root string
}

func NewDir(root string) *Dir { return &Dir{root: root} }

// FetchTile returns the stored screenshot for req.Variant. The stored size is
// not adjusted to req; a mismatch surfaces when the panel is composed.
func (d *Dir) FetchTile(ctx context.Context, req domain.TileRequest) ([]byte, error) {
	return d.read(ctx, TileFile(req.Variant))
}

// FetchForecast parses the stored table against the package clock.
func (d *Dir) FetchForecast(ctx context.Context) ([]domain.ForecastEntry, error) {
	data, err := d.read(ctx, ForecastFile)
	if err != nil {
		return nil, err
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrParse, ForecastFile, err)
	}

	now := domain.Now()
	entries := make([]domain.ForecastEntry, 0, len(table.Columns))
	for i, cells := range table.Columns {
		e, err := domain.ParseForecastColumn(cells, now)
		if err != nil {
			return nil, fmt.Errorf("forecast column %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FetchIcon resolves rawURL to icons/<base name of its path>.
func (d *Dir) FetchIcon(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: icon url %q: %w", domain.ErrFetch, rawURL, err)
	}
	return d.read(ctx, filepath.Join(IconDir, path.Base(u.Path)))
}

func (d *Dir) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	data, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		return nil, fmt.Errorf("%w: fixture %s: %w", domain.ErrFetch, name, err)
	}
	return data, nil
}
