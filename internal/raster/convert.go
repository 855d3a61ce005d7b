package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // weather icons
	_ "image/jpeg" // weather icons
	_ "image/png"  // screenshots and icons

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // weather icons

	"github.com/couchcryptid/weather-panel/internal/domain"
)

// Decode parses an encoded raster. Failures wrap domain.ErrDecode.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return img, nil
}

// ToNRGBA returns a copy of img as non-premultiplied RGBA with bounds
// starting at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// ToGray reduces img to single-channel luminance.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// Resize scales an opaque img to w x h with Catmull-Rom (bicubic)
// interpolation.
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}
