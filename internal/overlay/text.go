package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Align selects how a string is placed relative to its anchor point.
type Align int

const (
	// AlignLeft draws the string starting at the anchor.
	AlignLeft Align = iota
	// AlignCenter shifts the string left by half its advance.
	AlignCenter
	// AlignRight shifts the string left by its full advance.
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// TextRenderer draws one line of text with its top edge at pos.Y and returns
// the advance width in pixels.
type TextRenderer interface {
	Draw(dst draw.Image, text string, pos image.Point, face font.Face, align Align, c color.Color) int
}

// FontRenderer implements TextRenderer with golang.org/x/image/font.
type FontRenderer struct{}

// Measure returns the advance width of text in whole pixels.
func (FontRenderer) Measure(text string, face font.Face) int {
	return font.MeasureString(face, text).Ceil()
}

func (r FontRenderer) Draw(dst draw.Image, text string, pos image.Point, face font.Face, align Align, c color.Color) int {
	width := r.Measure(text, face)

	x := pos.X
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, pos.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return width
}
