// Package fonts loads OpenType/TrueType files and builds sized faces.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Face roles.
const (
	JPMedium  = "JP_MEDIUM"
	JPRegular = "JP_REGULAR"
	JPBold    = "JP_BOLD"
	ENHeavy   = "EN_HEAVY"
	ENMedium  = "EN_MEDIUM"
	ENBold    = "EN_BOLD"
)

// ErrUnknownFont is returned by Face for a role that was not loaded.
var ErrUnknownFont = errors.New("unknown font")

// Set holds parsed fonts by role.
type Set struct {
	fonts map[string]*opentype.Font
}

// Load parses files (role -> file name) relative to dir. Every file must
// exist and parse.
func Load(dir string, files map[string]string) (*Set, error) {
	roles := make([]string, 0, len(files))
	for role := range files {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	s := &Set{fonts: make(map[string]*opentype.Font, len(files))}
	for _, role := range roles {
		path := filepath.Join(dir, files[role])
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", role, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("font %s: parse %s: %w", role, path, err)
		}
		s.fonts[role] = f
	}
	return s, nil
}

// Face returns a face of role at size pixels (72 DPI, so points equal pixels).
func (s *Set) Face(role string, size float64) (font.Face, error) {
	f, ok := s.fonts[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, role)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %s at %.0fpx: %w", role, size, err)
	}
	return face, nil
}
