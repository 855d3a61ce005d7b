// Package compose places rendered sub-panels onto the fixed-size output
// canvas and reduces it to grayscale.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

// Placement puts one sub-panel at Offset. A non-zero Size is the size the
// layout was computed for; a panel of any other size is rejected.
type Placement struct {
	Name   string
	Panel  image.Image
	Offset image.Point
	Size   image.Point
}

// Layout is a complete output image description.
type Layout struct {
	Width, Height int
	Placements    []Placement
}

// Canvas is the output raster of one render pass.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a w x h canvas filled with opaque white.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Paste overwrites the canvas with panel at offset. There is no blending:
// panel alpha is copied as is. A panel that does not fit entirely inside the
// canvas is rejected with domain.ErrDimensionMismatch.
func (c *Canvas) Paste(panel image.Image, offset image.Point) error {
	pb := panel.Bounds()
	dr := image.Rectangle{Min: offset, Max: offset.Add(pb.Size())}
	if !dr.In(c.img.Rect) {
		return fmt.Errorf("%w: panel %v at %v exceeds canvas %v", domain.ErrDimensionMismatch, pb.Size(), offset, c.img.Rect.Size())
	}
	draw.Draw(c.img, dr, panel, pb.Min, draw.Src)
	return nil
}

// Place pastes p after checking its declared size.
func (c *Canvas) Place(p Placement) error {
	if got := p.Panel.Bounds().Size(); p.Size != (image.Point{}) && got != p.Size {
		return fmt.Errorf("%w: panel %q is %v, layout expects %v", domain.ErrDimensionMismatch, p.Name, got, p.Size)
	}
	if err := c.Paste(p.Panel, p.Offset); err != nil {
		return fmt.Errorf("place %q: %w", p.Name, err)
	}
	return nil
}

// RGBA returns the canvas buffer. It is shared, not copied.
func (c *Canvas) RGBA() *image.RGBA { return c.img }

// Gray reduces the canvas to single-channel luminance.
func (c *Canvas) Gray() *image.Gray {
	return raster.ToGray(c.img)
}

// Compose renders a layout in one step.
func Compose(l Layout) (*image.Gray, error) {
	c := NewCanvas(l.Width, l.Height)
	for _, p := range l.Placements {
		if err := c.Place(p); err != nil {
			return nil, err
		}
	}
	return c.Gray(), nil
}

// ColumnStart is the left edge of column i when width is split into count
// equal columns.
func ColumnStart(width, count, i int) int {
	return int(math.Floor(float64(width) / float64(count) * float64(i)))
}

// ColumnCenter is the horizontal centre of column i, the anchor for centred
// text and icons.
func ColumnCenter(width, count, i int) int {
	return int(math.Floor(float64(width) / float64(count) * (float64(i) + 0.5)))
}

// HalfOffset is the left edge of radar sub-panel i (0 or 1).
func HalfOffset(width, i int) int {
	return ColumnStart(width, 2, i)
}
