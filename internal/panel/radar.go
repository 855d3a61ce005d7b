package panel

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/image/font"

	"github.com/couchcryptid/weather-panel/internal/compose"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/overlay"
	"github.com/couchcryptid/weather-panel/internal/radar"
)

// SubPanel is one radar frame shown side by side with the others.
type SubPanel struct {
	Variant domain.Variant
	Caption string
}

// DefaultSubPanels shows the current frame on the left and the one hour
// nowcast on the right.
func DefaultSubPanels() []SubPanel {
	return []SubPanel{
		{Variant: domain.VariantCurrent, Caption: "現在"},
		{Variant: domain.VariantNextHour, Caption: "１時間後"},
	}
}

// RadarConfig configures the radar panel.
type RadarConfig struct {
	URL        string
	Width      int
	Height     int
	SubPanels  []SubPanel
	Classifier radar.ClassifierConfig
	Adjuster   radar.AdjusterConfig
	Overlay    overlay.Config
}

// DefaultRadarConfig returns the two sub-panel layout with the standard level
// table and overlay.
func DefaultRadarConfig(url string, width, height int) RadarConfig {
	return RadarConfig{
		URL:        url,
		Width:      width,
		Height:     height,
		SubPanels:  DefaultSubPanels(),
		Classifier: radar.DefaultClassifierConfig(),
		Adjuster:   radar.DefaultAdjusterConfig(),
		Overlay:    overlay.DefaultConfig(),
	}
}

// RadarPanel renders the rain cloud radar frames side by side.
type RadarPanel struct {
	cfg       RadarConfig
	fetcher   domain.TileFetcher
	retoucher *radar.Retoucher
	annotator *overlay.Annotator
	face      font.Face
}

func NewRadarPanel(cfg RadarConfig, fetcher domain.TileFetcher, text overlay.TextRenderer, caption font.Face) *RadarPanel {
	return &RadarPanel{
		cfg:     cfg,
		fetcher: fetcher,
		retoucher: radar.NewRetoucher(
			radar.NewClassifier(cfg.Classifier),
			radar.NewAdjuster(cfg.Adjuster),
		),
		annotator: overlay.NewAnnotator(cfg.Overlay, text),
		face:      orFallback(caption),
	}
}

// Size is the panel's pixel size.
func (p *RadarPanel) Size() image.Point { return image.Pt(p.cfg.Width, p.cfg.Height) }

// Render fetches, retouches, and annotates each sub-panel and pastes it into
// its column.
func (p *RadarPanel) Render(ctx context.Context) (*image.Gray, error) {
	n := len(p.cfg.SubPanels)
	if n == 0 {
		return nil, fmt.Errorf("%w: radar panel has no sub-panels", domain.ErrDimensionMismatch)
	}

	canvas := compose.NewCanvas(p.cfg.Width, p.cfg.Height)
	for i, sp := range p.cfg.SubPanels {
		x := compose.ColumnStart(p.cfg.Width, n, i)
		w := compose.ColumnStart(p.cfg.Width, n, i+1) - x

		img, err := p.renderSubPanel(ctx, sp, w)
		if err != nil {
			return nil, err
		}
		if err := canvas.Place(compose.Placement{
			Name:   string(sp.Variant),
			Panel:  img,
			Offset: image.Pt(x, 0),
			Size:   image.Pt(w, p.cfg.Height),
		}); err != nil {
			return nil, err
		}
	}
	return canvas.Gray(), nil
}

func (p *RadarPanel) renderSubPanel(ctx context.Context, sp SubPanel, width int) (*image.RGBA, error) {
	data, err := p.fetcher.FetchTile(ctx, domain.TileRequest{
		URL:     p.cfg.URL,
		Width:   width,
		Height:  p.cfg.Height,
		Variant: sp.Variant,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch radar %s: %w", sp.Variant, err)
	}

	img, err := p.retoucher.RetouchEncoded(data)
	if err != nil {
		return nil, fmt.Errorf("retouch radar %s: %w", sp.Variant, err)
	}
	p.annotator.Annotate(img, sp.Caption, p.face)
	return img, nil
}
