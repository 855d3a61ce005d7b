package radar

import (
	"fmt"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

// AdjusterConfig configures the background brightness curve.
type AdjusterConfig struct {
	// SaturationThreshold separates map background (below) from colour.
	SaturationThreshold uint8
	// Gamma must be greater than 1.
	Gamma    float64
	Scale    float64
	MaxValue uint8
}

func DefaultAdjusterConfig() AdjusterConfig {
	return AdjusterConfig{
		SaturationThreshold: 30,
		Gamma:               1.35,
		Scale:               0.3,
		MaxValue:            255,
	}
}

// Adjuster brightens the low-saturation background map with a power curve.
type Adjuster struct {
	threshold uint8
	curve     raster.LUT
}

func NewAdjuster(cfg AdjusterConfig) *Adjuster {
	a := &Adjuster{threshold: cfg.SaturationThreshold}
	for i := range a.curve {
		a.curve[i] = powCurve(uint8(i), cfg.Gamma, cfg.Scale, cfg.MaxValue)
	}
	return a
}

// Curve returns the adjusted value for v.
func (a *Adjuster) Curve(v uint8) uint8 {
	return a.curve[v]
}

// IsBackground reports whether a pixel of saturation s counts as map.
func (a *Adjuster) IsBackground(s uint8) bool {
	return s < a.threshold
}

// Adjust rewrites the value channel of dst in place. The background mask and
// the input value are both read from orig, the raster before
// classification, so pixels that were classified and are also background end
// up with the adjusted value.
func (a *Adjuster) Adjust(orig, dst *raster.HSV) error {
	if orig.Rect != dst.Rect {
		return fmt.Errorf("%w: adjust %v onto %v", domain.ErrDimensionMismatch, orig.Rect, dst.Rect)
	}
	b := orig.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, s, v := orig.HSVAt(x, y)
			if a.IsBackground(s) {
				dst.SetValue(x, y, a.curve[v])
			}
		}
	}
	return nil
}
