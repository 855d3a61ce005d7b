package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{1, 2, 3, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	r, g, b, _ := img.At(2, 1).RGBA()
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, domain.ErrDecode)

	_, err = Decode([]byte("<html>not an image</html>"))
	require.ErrorIs(t, err, domain.ErrDecode)
}

func TestToNRGBA_RebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{9, 8, 7, 255})

	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), dst.Rect)
	assert.Equal(t, color.NRGBA{9, 8, 7, 255}, dst.NRGBAAt(0, 0))
}

func TestToGray(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	g := ToGray(src)
	assert.Equal(t, []uint8{255, 0}, g.Pix)
}

func TestResize_ConstantImageStaysConstant(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	dst := Resize(src, 7, 5)
	assert.Equal(t, image.Rect(0, 0, 7, 5), dst.Rect)
	for _, p := range dst.Pix {
		assert.Equal(t, uint8(255), p)
	}
}
