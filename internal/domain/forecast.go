package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JST is the time zone the forecast table is published in.
var JST = time.FixedZone("JST", 9*60*60)

// dateCellRe matches the leading "<month>月<day>日" of a date cell such as
// "10月18日(土)". Line breaks inside the cell are removed before matching.
var dateCellRe = regexp.MustCompile(`^(\d{1,2})月(\d{1,2})日`)

// ForecastEntry is one forecast day. It is built once per render pass and is
// not modified afterwards.
type ForecastEntry struct {
	Date                 time.Time
	WeatherLabel         string
	IconURL              string
	TempHigh             int
	TempLow              int
	PrecipitationPercent int
}

// ForecastCells holds the raw text of one column of the weekly forecast table.
type ForecastCells struct {
	Date          string `json:"date"`
	WeatherAlt    string `json:"weather_alt"`
	WeatherSrc    string `json:"weather_src"`
	Temperature   string `json:"temperature"`
	Precipitation string `json:"precipitation"`
}

// ParseForecastColumn converts one table column into a ForecastEntry. The
// table omits the year, so it is taken from now (in JST); dates more than six
// months before now belong to the following year.
func ParseForecastColumn(cells ForecastCells, now time.Time) (ForecastEntry, error) {
	date, err := parseDateCell(cells.Date, now.In(JST))
	if err != nil {
		return ForecastEntry{}, err
	}

	high, low, err := parseTemperatureCell(cells.Temperature)
	if err != nil {
		return ForecastEntry{}, err
	}

	prec, err := parsePercentCell(cells.Precipitation)
	if err != nil {
		return ForecastEntry{}, err
	}

	return ForecastEntry{
		Date:                 date,
		WeatherLabel:         strings.TrimSpace(cells.WeatherAlt),
		IconURL:              largeIconURL(strings.TrimSpace(cells.WeatherSrc)),
		TempHigh:             high,
		TempLow:              low,
		PrecipitationPercent: prec,
	}, nil
}

func parseDateCell(s string, now time.Time) (time.Time, error) {
	s = strings.NewReplacer("\n", "", "\r", "", " ", "").Replace(s)
	m := dateCellRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrParse, s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: date %q out of range", ErrParse, s)
	}

	date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, JST)
	if date.Before(now.AddDate(0, -6, 0)) {
		date = date.AddDate(1, 0, 0)
	}
	return date, nil
}

// parseTemperatureCell reads "<high>\n<low>".
func parseTemperatureCell(s string) (high, low int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: temperature %q", ErrParse, s)
	}
	high, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: temperature high %q", ErrParse, fields[0])
	}
	low, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: temperature low %q", ErrParse, fields[1])
	}
	return high, low, nil
}

func parsePercentCell(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: precipitation %q", ErrParse, s)
	}
	return v, nil
}

// largeIconURL swaps the table's 90px icon for the 150px variant.
func largeIconURL(src string) string {
	return strings.Replace(src, "size90", "size150", 1)
}
