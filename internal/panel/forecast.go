package panel

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-panel/internal/compose"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/icon"
	"github.com/couchcryptid/weather-panel/internal/overlay"
)

var weekdayJP = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayLabel formats t's weekday the way the forecast column shows it, e.g. "(土)".
func WeekdayLabel(t time.Time) string {
	return "(" + weekdayJP[t.Weekday()] + ")"
}

// ForecastLayout holds the vertical offset of each row in a forecast column.
type ForecastLayout struct {
	DateY     int
	WeekdayY  int
	IconY     int
	WeatherY  int
	TempHighY int
	TempLowY  int

	TextColor    color.Color
	WeekdayColor color.Color
}

func DefaultForecastLayout() ForecastLayout {
	return ForecastLayout{
		DateY:        10,
		WeekdayY:     80,
		IconY:        130,
		WeatherY:     260,
		TempHighY:    335,
		TempLowY:     420,
		TextColor:    color.Black,
		WeekdayColor: color.Gray{Y: 0x33},
	}
}

// ForecastConfig configures the weekly forecast panel.
type ForecastConfig struct {
	Width  int
	Height int
	Icon   icon.Config
	Layout ForecastLayout
}

func DefaultForecastConfig(width, height int) ForecastConfig {
	return ForecastConfig{
		Width:  width,
		Height: height,
		Icon:   icon.DefaultConfig(),
		Layout: DefaultForecastLayout(),
	}
}

// ForecastPanel renders one column per forecast day.
type ForecastPanel struct {
	cfg       ForecastConfig
	source    domain.ForecastSource
	icons     domain.IconFetcher
	quantizer *icon.Quantizer
	text      overlay.TextRenderer
	faces     Faces
}

func NewForecastPanel(
	cfg ForecastConfig,
	source domain.ForecastSource,
	icons domain.IconFetcher,
	upscaler icon.Upscaler,
	text overlay.TextRenderer,
	faces Faces,
) *ForecastPanel {
	return &ForecastPanel{
		cfg:       cfg,
		source:    source,
		icons:     icons,
		quantizer: icon.NewQuantizer(cfg.Icon, upscaler),
		text:      text,
		faces: Faces{
			Date:    orFallback(faces.Date),
			Weekday: orFallback(faces.Weekday),
			Weather: orFallback(faces.Weather),
			Temp:    orFallback(faces.Temp),
		},
	}
}

func (p *ForecastPanel) Size() image.Point { return image.Pt(p.cfg.Width, p.cfg.Height) }

// Render fetches the forecast and draws every day into its column.
func (p *ForecastPanel) Render(ctx context.Context) (*image.Gray, error) {
	entries, err := p.source.FetchForecast(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: forecast table has no days", domain.ErrParse)
	}

	canvas := compose.NewCanvas(p.cfg.Width, p.cfg.Height)
	n := len(entries)
	for i, e := range entries {
		x := compose.ColumnStart(p.cfg.Width, n, i)
		w := compose.ColumnStart(p.cfg.Width, n, i+1) - x
		center := float64(p.cfg.Width) / float64(n) * (float64(i) + 0.5)

		col, err := p.renderColumn(ctx, e, w, center-float64(x))
		if err != nil {
			return nil, fmt.Errorf("forecast %s: %w", e.Date.Format("2006-01-02"), err)
		}
		if err := canvas.Place(compose.Placement{
			Name:   e.Date.Format("2006-01-02"),
			Panel:  col,
			Offset: image.Pt(x, 0),
			Size:   image.Pt(w, p.cfg.Height),
		}); err != nil {
			return nil, err
		}
	}
	return canvas.Gray(), nil
}

// renderColumn draws one day. center is the column's horizontal anchor
// relative to its left edge.
func (p *ForecastPanel) renderColumn(ctx context.Context, e domain.ForecastEntry, width int, center float64) (*image.RGBA, error) {
	data, err := p.icons.FetchIcon(ctx, e.IconURL)
	if err != nil {
		return nil, fmt.Errorf("fetch icon: %w", err)
	}
	ic, err := p.quantizer.QuantizeEncoded(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("quantize icon: %w", err)
	}

	col := image.NewRGBA(image.Rect(0, 0, width, p.cfg.Height))
	draw.Draw(col, col.Rect, image.White, image.Point{}, draw.Src)

	l := p.cfg.Layout
	cx := int(center)
	p.text.Draw(col, e.Date.Format("02"), image.Pt(cx, l.DateY), p.faces.Date, overlay.AlignCenter, l.TextColor)
	p.text.Draw(col, WeekdayLabel(e.Date), image.Pt(cx, l.WeekdayY), p.faces.Weekday, overlay.AlignCenter, l.WeekdayColor)

	ix := int(math.Floor(center - float64(ic.Rect.Dx())/2))
	dr := image.Rectangle{Min: image.Pt(ix, l.IconY), Max: image.Pt(ix, l.IconY).Add(ic.Rect.Size())}
	draw.Draw(col, dr, ic, ic.Rect.Min, draw.Over)

	p.text.Draw(col, e.WeatherLabel, image.Pt(cx, l.WeatherY), p.faces.Weather, overlay.AlignCenter, l.TextColor)
	p.text.Draw(col, strconv.Itoa(e.TempHigh), image.Pt(cx, l.TempHighY), p.faces.Temp, overlay.AlignCenter, l.TextColor)
	p.text.Draw(col, strconv.Itoa(e.TempLow), image.Pt(cx, l.TempLowY), p.faces.Temp, overlay.AlignCenter, l.TextColor)
	return col, nil
}
