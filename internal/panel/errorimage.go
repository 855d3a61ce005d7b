package panel

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode/utf8"

	"github.com/couchcryptid/weather-panel/internal/overlay"
	"github.com/couchcryptid/weather-panel/internal/raster"
)

const errorWrapWidth = 45

// ErrorImage is the fallback frame shown when a render pass fails: "ERROR" in
// the top left and the wrapped error text below it.
func ErrorImage(w, h int, err error, faces ErrorFaces) *image.Gray {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.White, image.Point{}, draw.Src)

	var text overlay.FontRenderer
	title := orFallback(faces.Title)
	body := orFallback(faces.Body)

	text.Draw(img, "ERROR", image.Pt(10, 10), title, overlay.AlignLeft, color.Gray{Y: 0x66})

	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	lineHeight := body.Metrics().Height.Ceil()
	for i, line := range wrapText(msg, errorWrapWidth) {
		text.Draw(img, line, image.Pt(20, 200+i*lineHeight), body, overlay.AlignLeft, color.Gray{Y: 0x33})
	}
	return raster.ToGray(img)
}

// wrapText breaks s into lines of at most width runes, splitting on
// whitespace and hard-breaking words longer than a line.
func wrapText(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > width {
			flush()
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		n := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+n > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	flush()
	return lines
}
