package raster

import "image"

// LUT maps each 8-bit channel level to a new level.
type LUT [256]uint8

// Identity returns the LUT that leaves every level unchanged.
func Identity() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return l
}

// Then returns the LUT equivalent to applying l and then next.
func (l LUT) Then(next LUT) LUT {
	var out LUT
	for i, v := range l {
		out[i] = next[v]
	}
	return out
}

// ApplyNRGBA rewrites the colour channels of img in place. Alpha is left
// untouched.
func (l *LUT) ApplyNRGBA(img *image.NRGBA) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i] = l[row[i]]
			row[i+1] = l[row[i+1]]
			row[i+2] = l[row[i+2]]
		}
	}
}
