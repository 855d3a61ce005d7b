package upscale

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"

	"github.com/couchcryptid/weather-panel/internal/adapter/fetch"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
)

func uniform(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, xdraw.Src)
	return img
}

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(baseURL, fetch.New("upscaler", 5*time.Second, logger, observability.NewMetricsForTesting()))
}

func TestClient_Upsample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upsample", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("scale"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))

		in, err := png.Decode(r.Body)
		require.NoError(t, err)
		b := in.Bounds()
		out := image.NewRGBA(image.Rect(0, 0, b.Dx()*4, b.Dy()*4))
		xdraw.NearestNeighbor.Scale(out, out.Rect, in, b, xdraw.Src, nil)
		require.NoError(t, png.Encode(w, out))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Upsample(context.Background(), uniform(3, 2, color.Black))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 8), got.Bounds())
}

func TestClient_Upsample_BadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("model not loaded"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Upsample(context.Background(), uniform(1, 1, color.White))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestClient_Upsample_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Upsample(context.Background(), uniform(1, 1, color.White))
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestResampler_Upsample(t *testing.T) {
	src := uniform(5, 3, color.RGBA{0x40, 0x80, 0xc0, 0xff})

	got, err := Resampler{}.Upsample(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 20, 12), got.Bounds())

	assert.Equal(t, color.RGBA{0x40, 0x80, 0xc0, 0xff}, got.(*image.RGBA).RGBAAt(10, 6))
}

func TestResampler_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Resampler{}.Upsample(ctx, uniform(1, 1, color.White))
	assert.ErrorIs(t, err, context.Canceled)
}
