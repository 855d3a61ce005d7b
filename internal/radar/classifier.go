package radar

import "github.com/couchcryptid/weather-panel/internal/raster"

// DefaultDesaturation is the saturation given to classified pixels. It keeps
// a faint tint so that classified bands stay distinguishable from the map
// after the final gray conversion.
const DefaultDesaturation = 80

// ClassifierConfig configures a Classifier.
type ClassifierConfig struct {
	Levels       []IntensityLevel
	Desaturation uint8
}

// DefaultClassifierConfig returns the JMA nowcast legend.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Levels:       DefaultLevels(),
		Desaturation: DefaultDesaturation,
	}
}

// Classifier maps rainfall colours onto intensity values.
type Classifier struct {
	levels       []IntensityLevel
	desaturation uint8
}

// NewClassifier creates a Classifier. The level table is copied; its order is
// the tie-break for overlapping bands.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	levels := make([]IntensityLevel, len(cfg.Levels))
	copy(levels, cfg.Levels)
	return &Classifier{levels: levels, desaturation: cfg.Desaturation}
}

// Match returns the last level whose region contains (h, s) and its index.
func (c *Classifier) Match(h, s uint8) (IntensityLevel, int, bool) {
	for i := len(c.levels) - 1; i >= 0; i-- {
		if c.levels[i].Matches(h, s) {
			return c.levels[i], i, true
		}
	}
	return IntensityLevel{}, -1, false
}

// Classify returns a copy of src where every pixel inside a rainfall band is
// replaced by (0, desaturation, level value). Other pixels are copied through.
func (c *Classifier) Classify(src *raster.HSV) *raster.HSV {
	dst := src.Clone()
	b := src.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			h, s, _ := src.HSVAt(x, y)
			if level, _, ok := c.Match(h, s); ok {
				dst.SetHSV(x, y, 0, c.desaturation, level.Value)
			}
		}
	}
	return dst
}

// Levels returns a copy of the level table.
func (c *Classifier) Levels() []IntensityLevel {
	out := make([]IntensityLevel, len(c.levels))
	copy(out, c.levels)
	return out
}
