// Package sink encodes rendered panels and keeps the latest one for display
// devices that poll over HTTP.
package sink

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

// PNG writes img to w as PNG. A *image.Gray is stored as 8-bit grayscale.
func PNG(w io.Writer, img image.Image) error {
	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
