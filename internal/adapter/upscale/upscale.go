// Package upscale provides icon.Upscaler implementations: a remote
// super-resolution model and a local resampler.
package upscale

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/couchcryptid/weather-panel/internal/adapter/fetch"
	"github.com/couchcryptid/weather-panel/internal/icon"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

// Client sends a PNG to a super-resolution service and decodes the PNG it
// returns. The service runs an ESPCN x4 model.
type Client struct {
	baseURL string
	fetch   *fetch.Client
}

func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetch: fetcher}
}

// Upsample returns src enlarged by icon.UpscaleFactor.
func (c *Client) Upsample(ctx context.Context, src image.Image) (image.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}

	url := c.baseURL + "/upsample?scale=" + strconv.Itoa(icon.UpscaleFactor)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")

	body, err := c.fetch.Do(req)
	if err != nil {
		return nil, err
	}
	img, err := raster.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("upscaler response: %w", err)
	}
	return img, nil
}

// Resampler enlarges locally with Catmull-Rom. It needs no model and is used
// when no upscaler service is configured.
type Resampler struct{}

func (Resampler) Upsample(ctx context.Context, src image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("upsample: %w", err)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*icon.UpscaleFactor, b.Dy()*icon.UpscaleFactor))
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, b, xdraw.Src, nil)
	return dst, nil
}
