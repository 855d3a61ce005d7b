// Package radar turns a colour precipitation-radar screenshot into an
// e-ink friendly raster: rainfall colours are collapsed onto a few gray
// levels and the background map is brightened.
package radar

import "math"

// Interval is an open interval (Lo, Hi) over 8-bit channel values.
type Interval struct {
	Lo, Hi int
}

// Any matches every channel value.
func Any() Interval { return Interval{Lo: -1, Hi: 256} }

// Below matches values strictly less than hi.
func Below(hi int) Interval { return Interval{Lo: -1, Hi: hi} }

// Above matches values strictly greater than lo.
func Above(lo int) Interval { return Interval{Lo: lo, Hi: 256} }

// Between matches values strictly between lo and hi.
func Between(lo, hi int) Interval { return Interval{Lo: lo, Hi: hi} }

func (i Interval) Contains(v uint8) bool {
	return i.Lo < int(v) && int(v) < i.Hi
}

// IntensityLevel is one rainfall band: the hue/saturation region of its
// legend colour and the value it is drawn with.
type IntensityLevel struct {
	Name       string
	Hue        Interval
	Saturation Interval
	Value      uint8
}

func (l IntensityLevel) Matches(h, s uint8) bool {
	return l.Hue.Contains(h) && l.Saturation.Contains(s)
}

// RampValue is the value assigned to the level at index in a table drawn
// on a descending ramp: baseScale * (totalLevels - index*2), clamped to a byte.
func RampValue(baseScale, totalLevels, index int) uint8 {
	return uint8(min(max(baseScale*(totalLevels-index*2), 0), 255))
}

const (
	defaultBaseScale   = 16
	defaultTotalLevels = 16
)

// DefaultLevels is the legend of the JMA high-resolution nowcast in its
// "deep" colour mode, weakest band first. Hue and saturation are full-range
// bytes. When regions overlap, the later entry wins.
func DefaultLevels() []IntensityLevel {
	levels := []IntensityLevel{
		{Name: "white", Hue: Between(160, 180), Saturation: Below(20)},
		{Name: "light_cyan", Hue: Between(140, 150), Saturation: Between(90, 100)},
		{Name: "cyan", Hue: Between(145, 155), Saturation: Between(210, 230)},
		{Name: "blue", Hue: Between(155, 165), Saturation: Above(230)},
		{Name: "yellow", Hue: Between(35, 45), Saturation: Any()},
		{Name: "orange", Hue: Between(20, 30), Saturation: Any()},
		{Name: "red", Hue: Between(0, 8), Saturation: Any()},
		{Name: "purple", Hue: Between(225, 235), Saturation: Above(240)},
	}
	for i := range levels {
		levels[i].Value = RampValue(defaultBaseScale, defaultTotalLevels, i)
	}
	return levels
}

// powCurve returns clamp(v^gamma * scale, 0, maxValue), truncated.
func powCurve(v uint8, gamma, scale float64, maxValue uint8) uint8 {
	out := math.Pow(float64(v), gamma) * scale
	if out <= 0 {
		return 0
	}
	if out >= float64(maxValue) {
		return maxValue
	}
	return uint8(out)
}
