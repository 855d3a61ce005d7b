package panel

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestErrorImage(t *testing.T) {
	img := ErrorImage(400, 300, errors.New("fetch radar current: browser timed out"), ErrorFaces{})

	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Rect)
	assert.Equal(t, uint8(255), img.GrayAt(399, 299).Y)

	inkIn := func(r image.Rectangle) bool {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if img.GrayAt(x, y).Y < 200 {
					return true
				}
			}
		}
		return false
	}
	assert.True(t, inkIn(image.Rect(10, 10, 60, 25)), "title")
	assert.True(t, inkIn(image.Rect(20, 200, 400, 215)), "message")
	assert.False(t, inkIn(image.Rect(0, 40, 400, 190)), "gap")
}

func TestErrorImage_NilError(t *testing.T) {
	img := ErrorImage(100, 250, nil, ErrorFaces{})
	assert.Equal(t, 100, img.Rect.Dx())
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "a b c", 10, []string{"a b c"}},
		{"breaks on space", "alpha beta gamma", 10, []string{"alpha beta", "gamma"}},
		{"long word", "abcdefghijkl xy", 5, []string{"abcde", "fghij", "kl xy"}},
		{"newlines collapse", "line one\nline two", 20, []string{"line one line two"}},
		{"multibyte", "現在 １時間後", 4, []string{"現在", "１時間後"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.in, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrapText mismatch (-want +got):\n%s", diff)
			}
			for _, line := range got {
				assert.LessOrEqual(t, len([]rune(line)), tt.width, strings.TrimSpace(line))
			}
		})
	}
}
