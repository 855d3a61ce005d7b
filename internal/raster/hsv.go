// Package raster holds the pixel buffers and colour conversions shared by the
// radar, icon, and compositing stages.
package raster

import (
	"image"
	"image/color"
	"math"
)

// HSV is an 8-bit hue/saturation/value raster. Hue uses the full byte range:
// 0..255 covers 0..360 degrees. Pixels are stored as consecutive h, s, v
// triples in row-major order.
//
// HSV implements image.Image by converting back to RGB on access, so a
// classified radar frame can be pasted without an explicit conversion.
type HSV struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewHSV returns a zeroed HSV raster with the given bounds.
func NewHSV(r image.Rectangle) *HSV {
	w, h := r.Dx(), r.Dy()
	return &HSV{
		Pix:    make([]uint8, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

// HSVFromImage converts every pixel of img. Alpha is ignored: screenshots are
// opaque and the colour channels are read unpremultiplied.
func HSVFromImage(img image.Image) *HSV {
	b := img.Bounds()
	dst := NewHSV(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			h, s, v := RGBToHSV(c.R, c.G, c.B)
			dst.SetHSV(x, y, h, s, v)
		}
	}
	return dst
}

func (p *HSV) ColorModel() color.Model { return color.RGBAModel }

func (p *HSV) Bounds() image.Rectangle { return p.Rect }

func (p *HSV) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	r, g, b := HSVToRGB(p.HSVAt(x, y))
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// PixOffset returns the index of the first element of Pix for pixel (x, y).
func (p *HSV) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// HSVAt returns the raw channels at (x, y). It panics outside Rect.
func (p *HSV) HSVAt(x, y int) (h, s, v uint8) {
	i := p.PixOffset(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

func (p *HSV) SetHSV(x, y int, h, s, v uint8) {
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = h, s, v
}

// SetValue overwrites only the value channel at (x, y).
func (p *HSV) SetValue(x, y int, v uint8) {
	p.Pix[p.PixOffset(x, y)+2] = v
}

// Clone returns a deep copy.
func (p *HSV) Clone() *HSV {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &HSV{Pix: pix, Stride: p.Stride, Rect: p.Rect}
}

// RGBA converts the raster back to an opaque RGBA image.
func (p *HSV) RGBA() *image.RGBA {
	dst := image.NewRGBA(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			r, g, b := HSVToRGB(p.HSVAt(x, y))
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, b, 0xff
		}
	}
	return dst
}

// RGBToHSV converts an 8-bit RGB triple to full-range HSV with rounding to
// the nearest integer.
func RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	mx := math.Max(fr, math.Max(fg, fb))
	mn := math.Min(fr, math.Min(fg, fb))
	diff := mx - mn

	v = uint8(mx)
	if diff == 0 {
		return 0, 0, v
	}
	s = uint8(math.Round(255 * diff / mx))

	var hh float64
	switch mx {
	case fr:
		hh = fg - fb
	case fg:
		hh = fb - fr + 2*diff
	default:
		hh = fr - fg + 4*diff
	}
	hh = math.Round(hh * 256 / (6 * diff))
	if hh < 0 {
		hh += 256
	}
	return clampByte(hh), s, v
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	if s == 0 {
		return v, v, v
	}
	fh := float64(h) * 6 / 256
	fs := float64(s) / 255
	fv := float64(v) / 255

	sector := math.Floor(fh)
	f := fh - sector

	p := fv * (1 - fs)
	q := fv * (1 - fs*f)
	t := fv * (1 - fs*(1-f))

	var fr, fg, fb float64
	switch int(sector) {
	case 0:
		fr, fg, fb = fv, t, p
	case 1:
		fr, fg, fb = q, fv, p
	case 2:
		fr, fg, fb = p, fv, t
	case 3:
		fr, fg, fb = p, q, fv
	case 4:
		fr, fg, fb = t, p, fv
	default:
		fr, fg, fb = fv, p, q
	}
	return clampByte(math.Round(fr * 255)), clampByte(math.Round(fg * 255)), clampByte(math.Round(fb * 255))
}

func clampByte(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(x)
	}
}
