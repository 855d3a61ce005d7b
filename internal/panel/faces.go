package panel

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Faces are the font faces one render pass draws with.
type Faces struct {
	Caption font.Face // radar sub-panel caption
	Date    font.Face // forecast day of month
	Weekday font.Face
	Weather font.Face
	Temp    font.Face
}

// ErrorFaces are used by ErrorImage.
type ErrorFaces struct {
	Title font.Face
	Body  font.Face
}

// FallbackFaces uses the built-in bitmap face for every role. Glyphs outside
// ASCII render as boxes.
func FallbackFaces() Faces {
	f := basicfont.Face7x13
	return Faces{Caption: f, Date: f, Weekday: f, Weather: f, Temp: f}
}

func orFallback(f font.Face) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}
	return f
}
