package domain

import "context"

// Variant selects which radar frame the browser collaborator captures.
type Variant string

const (
	VariantCurrent  Variant = "current"
	VariantNextHour Variant = "next_hour"
)

// TileRequest describes one screenshot. The collaborator guarantees that the
// returned raster is exactly Width x Height pixels.
type TileRequest struct {
	URL     string
	Width   int
	Height  int
	Variant Variant
}

// TileFetcher returns an encoded raster (PNG) of a page element.
type TileFetcher interface {
	FetchTile(ctx context.Context, req TileRequest) ([]byte, error)
}

// ForecastSource returns one entry per forecast day, in display order.
type ForecastSource interface {
	FetchForecast(ctx context.Context) ([]ForecastEntry, error)
}

// IconFetcher downloads an encoded weather icon.
type IconFetcher interface {
	FetchIcon(ctx context.Context, url string) ([]byte, error)
}
