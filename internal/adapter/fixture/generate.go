package fixture

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

// Swatch is a named legend colour painted into generated radar tiles.
type Swatch struct {
	Name  string
	Color color.RGBA
}

func hsvSwatch(name string, h, s, v uint8) Swatch {
	r, g, b := raster.HSVToRGB(h, s, v)
	return Swatch{Name: name, Color: color.RGBA{r, g, b, 255}}
}

// Legend approximates the nowcast legend, weakest band first.
func Legend() []Swatch {
	return []Swatch{
		hsvSwatch("white", 170, 10, 250),
		hsvSwatch("light_cyan", 145, 95, 255),
		hsvSwatch("cyan", 150, 220, 255),
		hsvSwatch("blue", 160, 245, 255),
		hsvSwatch("yellow", 40, 255, 250),
		hsvSwatch("orange", 25, 255, 255),
		hsvSwatch("red", 4, 255, 255),
		hsvSwatch("purple", 230, 250, 180),
	}
}

var (
	landColor  = color.RGBA{205, 205, 195, 255}
	waterColor = color.RGBA{175, 195, 215, 255}
)

type day struct {
	label string
	icon  string
	high  int
	low   int
	prec  int
}

var week = []day{
	{"晴れ", "sunny.png", 24, 14, 0},
	{"晴時々曇", "sunny.png", 23, 15, 10},
	{"曇り", "cloudy.png", 21, 16, 30},
	{"雨", "rain.png", 18, 15, 80},
	{"曇時々雨", "rain.png", 19, 13, 50},
	{"曇り", "cloudy.png", 20, 12, 20},
	{"晴れ", "sunny.png", 22, 11, 0},
}

// Options sizes the generated fixtures.
type Options struct {
	TileWidth  int
	TileHeight int
	Days       int
	Start      time.Time // first forecast day
}

// Generate writes radar tiles, a forecast table and icons under root.
//
// The current tile shows every legend band once; the next-hour tile shifts
// the bands right by one so the two halves of the panel differ.
func Generate(root string, opts Options) error {
	if opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		return fmt.Errorf("%w: tile size %dx%d", domain.ErrDimensionMismatch, opts.TileWidth, opts.TileHeight)
	}
	if opts.Days <= 0 || opts.Days > len(week) {
		opts.Days = len(week)
	}
	if err := os.MkdirAll(filepath.Join(root, IconDir), 0o755); err != nil {
		return err
	}

	legend := Legend()
	for shift, v := range []domain.Variant{domain.VariantCurrent, domain.VariantNextHour} {
		tile := radarTile(opts.TileWidth, opts.TileHeight, legend, shift)
		if err := writePNG(filepath.Join(root, TileFile(v)), tile); err != nil {
			return err
		}
	}

	start := opts.Start.In(domain.JST)
	table := Table{Columns: make([]domain.ForecastCells, 0, opts.Days)}
	for i := 0; i < opts.Days; i++ {
		d := week[i]
		date := start.AddDate(0, 0, i)
		table.Columns = append(table.Columns, domain.ForecastCells{
			Date:          fmt.Sprintf("%d月%d日(%s)", int(date.Month()), date.Day(), weekdayKanji[date.Weekday()]),
			WeatherAlt:    d.label,
			WeatherSrc:    "https://fixtures.invalid/size90/" + d.icon,
			Temperature:   strconv.Itoa(d.high) + "\n" + strconv.Itoa(d.low),
			Precipitation: strconv.Itoa(d.prec),
		})
	}
	if err := writeJSON(filepath.Join(root, ForecastFile), table); err != nil {
		return err
	}

	for name, img := range icons() {
		if err := writePNG(filepath.Join(root, IconDir, name), img); err != nil {
			return err
		}
	}
	return nil
}

var weekdayKanji = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// radarTile paints land on the top half, water on the bottom half and the
// legend bands across the middle third.
func radarTile(w, h int, legend []Swatch, shift int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, image.Rect(0, 0, w, h/2), image.NewUniform(landColor), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h/2, w, h), image.NewUniform(waterColor), image.Point{}, draw.Src)

	n := len(legend) + 1
	for i, sw := range legend {
		x0 := w * (i + shift) / n
		x1 := w * (i + shift + 1) / n
		r := image.Rect(x0, h/3, x1, 2*h/3)
		draw.Draw(img, r, image.NewUniform(sw.Color), image.Point{}, draw.Src)
	}
	return img
}

// icons draws simple 90px glyphs on a transparent background.
func icons() map[string]*image.NRGBA {
	const size = 90
	disc := func(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}
	sunny := image.NewNRGBA(image.Rect(0, 0, size, size))
	disc(sunny, 45, 45, 28, color.NRGBA{255, 140, 0, 255})

	cloudy := image.NewNRGBA(image.Rect(0, 0, size, size))
	disc(cloudy, 32, 50, 20, color.NRGBA{150, 150, 150, 255})
	disc(cloudy, 55, 42, 24, color.NRGBA{150, 150, 150, 255})

	rain := image.NewNRGBA(image.Rect(0, 0, size, size))
	disc(rain, 45, 35, 24, color.NRGBA{110, 110, 120, 255})
	for x := 25; x <= 65; x += 10 {
		for y := 62; y < 84; y++ {
			rain.SetNRGBA(x, y, color.NRGBA{30, 90, 255, 255})
		}
	}
	return map[string]*image.NRGBA{"sunny.png": sunny, "cloudy.png": cloudy, "rain.png": rain}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
