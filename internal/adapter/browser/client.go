// Package browser talks to the headless browser service that captures radar
// screenshots and extracts the weekly forecast table.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/couchcryptid/weather-panel/internal/adapter/fetch"
	"github.com/couchcryptid/weather-panel/internal/domain"
)

const (
	// radarSelector is the map element of the nowcast page.
	radarSelector = `//div[contains(@id, "jmatile_map_")]`
	// forecastSelector is the weekly forecast table.
	forecastSelector = `//table[@class="yjw_table"]`
)

// radarChrome are page elements hidden before the screenshot so only the
// map remains.
var radarChrome = []string{
	"jmatile-map-title",
	"leaflet-bar",
	"leaflet-control-attribution",
	"leaflet-control-scale-line",
}

// Client implements domain.TileFetcher against the browser service.
type Client struct {
	baseURL string
	fetch   *fetch.Client
}

func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetch: fetcher}
}

type screenshotRequest struct {
	URL      string   `json:"url"`
	Selector string   `json:"selector"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Variant  string   `json:"variant"`
	Hide     []string `json:"hide,omitempty"`
}

// FetchTile captures the radar map. The service resizes the viewport so the
// element is exactly req.Width x req.Height and steps the nowcast timeline
// forward for domain.VariantNextHour.
func (c *Client) FetchTile(ctx context.Context, req domain.TileRequest) ([]byte, error) {
	return c.post(ctx, "/screenshot", screenshotRequest{
		URL:      req.URL,
		Selector: radarSelector,
		Width:    req.Width,
		Height:   req.Height,
		Variant:  string(req.Variant),
		Hide:     radarChrome,
	})
}

type tableRequest struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

type tableResponse struct {
	Columns []domain.ForecastCells `json:"columns"`
}

// Forecast returns a domain.ForecastSource for the weekly forecast page at url.
func (c *Client) Forecast(url string) *ForecastSource {
	return &ForecastSource{client: c, url: url}
}

// ForecastSource implements domain.ForecastSource.
type ForecastSource struct {
	client *Client
	url    string
}

// FetchForecast extracts the forecast table and parses one entry per column.
// Dates are resolved against the package clock.
func (s *ForecastSource) FetchForecast(ctx context.Context) ([]domain.ForecastEntry, error) {
	body, err := s.client.post(ctx, "/table", tableRequest{URL: s.url, Selector: forecastSelector})
	if err != nil {
		return nil, err
	}

	var resp tableResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: forecast table: %w", domain.ErrParse, err)
	}

	now := domain.Now()
	entries := make([]domain.ForecastEntry, 0, len(resp.Columns))
	for i, cells := range resp.Columns {
		e, err := domain.ParseForecastColumn(cells, now)
		if err != nil {
			return nil, fmt.Errorf("forecast column %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.fetch.Do(req)
}
