// Command genmock writes an offline fixture directory: two synthetic radar
// tiles painted with the nowcast legend, a forecast table and weather icons.
// The directory feeds `render -fixtures` and the integration tests.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock -width 1600 -height 1200
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-panel/internal/adapter/fixture"
	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/radar"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for the fixtures")
	width := flag.Int("width", 1600, "radar tile width (half the radar panel)")
	height := flag.Int("height", 1200, "radar tile height")
	days := flag.Int("days", 7, "number of forecast days")
	startFlag := flag.String("start", "2026-10-18", "first forecast day (YYYY-MM-DD, JST)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	start, err := time.ParseInLocation(time.DateOnly, *startFlag, domain.JST)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	// Freeze the clock so the year of the table dates resolves to -start.
	domain.SetClock(clockwork.NewFakeClockAt(start))
	defer domain.SetClock(nil)

	if err := fixture.Generate(*out, fixture.Options{
		TileWidth:  *width,
		TileHeight: *height,
		Days:       *days,
		Start:      start,
	}); err != nil {
		return fmt.Errorf("generating fixtures: %w", err)
	}
	log.Printf("wrote fixtures: %s", *out)

	entries, err := fixture.NewDir(*out).FetchForecast(context.Background())
	if err != nil {
		return fmt.Errorf("reading back forecast: %w", err)
	}
	log.Printf("forecast: %d days from %s", len(entries), entries[0].Date.Format(time.DateOnly))

	printStats(fixture.Legend())
	return nil
}

// printStats shows which intensity level every legend swatch classifies as,
// the numbers to update when the level table changes.
func printStats(legend []fixture.Swatch) {
	c := radar.NewClassifier(radar.DefaultClassifierConfig())

	fmt.Println("\n=== Legend classification ===")
	var matched int
	for _, sw := range legend {
		h, s, v := raster.RGBToHSV(sw.Color.R, sw.Color.G, sw.Color.B)
		level, idx, ok := c.Match(h, s)
		if !ok {
			fmt.Printf("  %-10s hsv=(%3d,%3d,%3d) -> background\n", sw.Name, h, s, v)
			continue
		}
		matched++
		fmt.Printf("  %-10s hsv=(%3d,%3d,%3d) -> %s (#%d, value %d)\n", sw.Name, h, s, v, level.Name, idx, level.Value)
	}
	fmt.Printf("Matched: %d/%d\n", matched, len(legend))
}
