// Package icons downloads weather icons referenced by the forecast table.
package icons

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchcryptid/weather-panel/internal/adapter/fetch"
)

// Client implements domain.IconFetcher with a plain HTTP GET.
type Client struct {
	fetch *fetch.Client
}

func NewClient(fetcher *fetch.Client) *Client {
	return &Client{fetch: fetcher}
}

// FetchIcon downloads the encoded icon at url.
func (c *Client) FetchIcon(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.fetch.Do(req)
}
