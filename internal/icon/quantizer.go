// Package icon prepares weather icons for a low bit-depth display: the icon
// is upscaled, its tones are collapsed into coarse steps, gamma corrected,
// resized to its final size, and white is keyed out to transparency.
package icon

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

// UpscaleFactor is the linear scale an Upscaler must apply.
const UpscaleFactor = 4

// Upscaler increases the linear resolution of an opaque image by
// UpscaleFactor. Implementations may call a remote super-resolution model.
type Upscaler interface {
	Upsample(ctx context.Context, img image.Image) (image.Image, error)
}

// Config holds the quantization constants.
type Config struct {
	// ToneStep is the width of one tone band; 0 disables quantization.
	ToneStep int
	// Gamma is applied as level^(1/Gamma). Values below 1 darken.
	Gamma float64
	// Scale is the final size relative to the source icon.
	Scale float64
}

func DefaultConfig() Config {
	return Config{ToneStep: 32, Gamma: 0.24, Scale: 1.6}
}

// ToneTable maps level l to min(ceil(l/step)*step, 255).
func ToneTable(step int) raster.LUT {
	if step <= 0 {
		return raster.Identity()
	}
	var l raster.LUT
	for i := range l {
		l[i] = uint8(min((i+step-1)/step*step, 255))
	}
	return l
}

// GammaTable maps level l to 255 * (l/255)^(1/gamma), truncated.
func GammaTable(gamma float64) raster.LUT {
	if gamma <= 0 {
		return raster.Identity()
	}
	var l raster.LUT
	for i := range l {
		l[i] = uint8(255 * math.Pow(float64(i)/255, 1/gamma))
	}
	return l
}

// Quantizer runs the icon pipeline.
type Quantizer struct {
	cfg      Config
	upscaler Upscaler
	lut      raster.LUT
}

func NewQuantizer(cfg Config, upscaler Upscaler) *Quantizer {
	return &Quantizer{
		cfg:      cfg,
		upscaler: upscaler,
		// Gamma is looked up on the quantized level, not on the raw one.
		lut: ToneTable(cfg.ToneStep).Then(GammaTable(cfg.Gamma)),
	}
}

// TargetSize returns the final icon size for a source of w x h.
func (q *Quantizer) TargetSize(w, h int) (int, int) {
	return int(float64(w) * q.cfg.Scale), int(float64(h) * q.cfg.Scale)
}

// QuantizeEncoded decodes an icon and quantizes it.
func (q *Quantizer) QuantizeEncoded(ctx context.Context, data []byte) (*image.NRGBA, error) {
	img, err := raster.Decode(data)
	if err != nil {
		return nil, err
	}
	return q.Quantize(ctx, img)
}

// Quantize returns the processed icon. Its alpha channel is binary: pure
// white pixels are fully transparent, everything else is opaque.
func (q *Quantizer) Quantize(ctx context.Context, src image.Image) (*image.NRGBA, error) {
	b := src.Bounds()
	tw, th := q.TargetSize(b.Dx(), b.Dy())
	if tw <= 0 || th <= 0 {
		return nil, fmt.Errorf("%w: icon %dx%d scales to %dx%d", domain.ErrDimensionMismatch, b.Dx(), b.Dy(), tw, th)
	}

	flat := flatten(src)

	up, err := q.upscaler.Upsample(ctx, flat)
	if err != nil {
		return nil, fmt.Errorf("upsample icon: %w", err)
	}
	want := image.Pt(b.Dx()*UpscaleFactor, b.Dy()*UpscaleFactor)
	if got := up.Bounds().Size(); got != want {
		return nil, fmt.Errorf("%w: upscaler returned %v, want %v", domain.ErrDimensionMismatch, got, want)
	}

	work := raster.ToNRGBA(up)
	q.lut.ApplyNRGBA(work)

	return keyWhite(raster.Resize(work, tw, th)), nil
}

// flatten paints fully transparent pixels white and drops alpha so that
// resampling does not pick up whatever colour hides under transparency.
func flatten(src image.Image) *image.NRGBA {
	img := raster.ToNRGBA(src)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] == 0 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 0xff, 0xff, 0xff
		}
		img.Pix[i+3] = 0xff
	}
	return img
}

// keyWhite converts an opaque image to NRGBA with pure white made transparent.
func keyWhite(src *image.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] == 0xff && dst.Pix[i+1] == 0xff && dst.Pix[i+2] == 0xff {
			dst.Pix[i+3] = 0
		} else {
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}
