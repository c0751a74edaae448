// Package surface turns rendered frames into pixels or terminal cells and key
// presses into input tokens. Backends live in the sub packages.
package surface

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var named = map[string]colorful.Color{
	"black":      rgb(0, 0, 0),
	"white":      rgb(255, 255, 255),
	"green":      rgb(0, 128, 0),
	"lightgreen": rgb(144, 238, 144),
	"yellow":     rgb(255, 255, 0),
	"orange":     rgb(255, 165, 0),
	"red":        rgb(255, 0, 0),
	"purple":     rgb(128, 0, 128),
	"blue":       rgb(0, 0, 255),
	"cyan":       rgb(0, 255, 255),
	"gold":       rgb(255, 215, 0),
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ParseColor accepts the color names the game draws with and "#rgb" or
// "#rrggbb" hex strings.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(err, "unknown color %q", s)
	}
	return c, nil
}

// MustParseColor is ParseColor for colors that are known to be valid. Invalid
// input renders black.
func MustParseColor(s string) colorful.Color {
	c, _ := ParseColor(s)
	return c
}

// Nearest returns the index of the palette entry perceptually closest to c.
func Nearest(c colorful.Color, palette []colorful.Color) int {
	best, dist := 0, -1.0
	for i, p := range palette {
		if d := c.DistanceLab(p); dist < 0 || d < dist {
			best, dist = i, d
		}
	}
	return best
}
