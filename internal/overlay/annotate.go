// Package overlay draws the reference marks and captions on top of a
// retouched radar frame.
package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

// Config is the annotation geometry. Diameters and stroke widths are in
// pixels; strokes are drawn inward from the diameter.
type Config struct {
	OriginDiameter float64
	OriginStroke   float64
	OriginFill     color.Color

	// RingDiameter is a tuning value: at the default zoom 200px is roughly
	// 5km, but it has to be adjusted together with the map URL.
	RingDiameter float64
	RingStroke   float64

	StrokeColor  color.Color
	CaptionAt    image.Point
	CaptionColor color.Color
}

func DefaultConfig() Config {
	return Config{
		OriginDiameter: 15,
		OriginStroke:   3,
		OriginFill:     color.Gray{Y: 120},
		RingDiameter:   200,
		RingStroke:     2,
		StrokeColor:    color.Gray{Y: 60},
		CaptionAt:      image.Pt(10, 10),
		CaptionColor:   color.Black,
	}
}

// Annotator draws the origin marker, the distance ring, and a caption.
type Annotator struct {
	cfg  Config
	text TextRenderer
}

func NewAnnotator(cfg Config, text TextRenderer) *Annotator {
	return &Annotator{cfg: cfg, text: text}
}

// Annotate draws the rings and the caption onto dst in place.
func (a *Annotator) Annotate(dst draw.Image, caption string, face font.Face) {
	a.DrawRings(dst)
	a.DrawCaption(dst, caption, face)
}

// DrawRings draws a filled origin disc and an unfilled ring, both centred on
// dst.
func (a *Annotator) DrawRings(dst draw.Image) {
	b := dst.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2

	r := float32(a.cfg.OriginDiameter / 2)
	fillCircle(dst, cx, cy, r, a.cfg.OriginFill)
	strokeCircle(dst, cx, cy, r, float32(a.cfg.OriginStroke), a.cfg.StrokeColor)

	strokeCircle(dst, cx, cy, float32(a.cfg.RingDiameter/2), float32(a.cfg.RingStroke), a.cfg.StrokeColor)
}

// DrawCaption draws caption left-aligned at the configured offset and
// returns its advance width.
func (a *Annotator) DrawCaption(dst draw.Image, caption string, face font.Face) int {
	pos := dst.Bounds().Min.Add(a.cfg.CaptionAt)
	return a.text.Draw(dst, caption, pos, face, AlignLeft, a.cfg.CaptionColor)
}

// kappa places cubic Bézier control points for a quarter circle.
const kappa = 0.5522847498

func fillCircle(dst draw.Image, cx, cy, r float32, c color.Color) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	addCircle(z, cx, cy, r, 1)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokeCircle fills the annulus between r-width and r. The inner circle is
// wound the other way so that it cancels the outer one.
func strokeCircle(dst draw.Image, cx, cy, r, width float32, c color.Color) {
	if r <= 0 || width <= 0 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	addCircle(z, cx, cy, r, 1)
	if inner := r - width; inner > 0 {
		addCircle(z, cx, cy, inner, -1)
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// addCircle appends a closed circle of four cubic arcs. dir is +1 or -1 and
// picks the winding direction.
func addCircle(z *vector.Rasterizer, cx, cy, r, dir float32) {
	k := kappa * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+dir*k, cx+k, cy+dir*r, cx, cy+dir*r)
	z.CubeTo(cx-k, cy+dir*r, cx-r, cy+dir*k, cx-r, cy)
	z.CubeTo(cx-r, cy-dir*k, cx-k, cy-dir*r, cx, cy-dir*r)
	z.CubeTo(cx+k, cy-dir*r, cx+r, cy-dir*k, cx+r, cy)
	z.ClosePath()
}
