package radar

import (
	"image"

	"github.com/couchcryptid/weather-panel/internal/raster"
)

// Retoucher runs classification and background adjustment on a radar frame.
type Retoucher struct {
	classifier *Classifier
	adjuster   *Adjuster
}

func NewRetoucher(classifier *Classifier, adjuster *Adjuster) *Retoucher {
	return &Retoucher{classifier: classifier, adjuster: adjuster}
}

// Retouch returns the processed frame as a new opaque RGBA image with the
// same bounds as img.
func (r *Retoucher) Retouch(img image.Image) (*image.RGBA, error) {
	orig := raster.HSVFromImage(img)
	out := r.classifier.Classify(orig)
	if err := r.adjuster.Adjust(orig, out); err != nil {
		return nil, err
	}
	return out.RGBA(), nil
}

// RetouchEncoded decodes a screenshot and retouches it.
func (r *Retoucher) RetouchEncoded(data []byte) (*image.RGBA, error) {
	img, err := raster.Decode(data)
	if err != nil {
		return nil, err
	}
	return r.Retouch(img)
}
