package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
)

// inkColumns returns the x range that holds non-white pixels.
func inkColumns(img *image.RGBA) (minX, maxX int, found bool) {
	b := img.Bounds()
	minX, maxX = b.Max.X, b.Min.X-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R != 0xff {
				minX = min(minX, x)
				maxX = max(maxX, x)
				found = true
			}
		}
	}
	return minX, maxX, found
}

func TestFontRenderer_Alignment(t *testing.T) {
	face := basicfont.Face7x13

	tests := []struct {
		align      Align
		minX, maxX int
	}{
		{AlignLeft, 50, 71},
		{AlignCenter, 40, 61},
		{AlignRight, 29, 50},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			img := whiteRGBA(100, 40)
			w := FontRenderer{}.Draw(img, "ABC", image.Pt(50, 5), face, tt.align, color.Black)
			assert.Equal(t, 21, w)

			minX, maxX, found := inkColumns(img)
			assert.True(t, found)
			assert.GreaterOrEqual(t, minX, tt.minX)
			assert.Less(t, maxX, tt.maxX)
		})
	}
}

func TestFontRenderer_TopAnchored(t *testing.T) {
	img := whiteRGBA(40, 40)
	FontRenderer{}.Draw(img, "H", image.Pt(2, 20), basicfont.Face7x13, AlignLeft, color.Black)

	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			assert.Equal(t, uint8(0xff), img.RGBAAt(x, y).R, "no ink above the anchor (%d,%d)", x, y)
		}
	}
}

func TestFontRenderer_Measure(t *testing.T) {
	assert.Equal(t, 0, FontRenderer{}.Measure("", basicfont.Face7x13))
	assert.Equal(t, 35, FontRenderer{}.Measure("hello", basicfont.Face7x13))
}
