package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default drawing colours.
const (
	DefaultLineColor   = "#000000"
	DefaultLabelColor  = "#ffffff"
	DefaultMarkerColor = "#00ff00"
	DefaultScoreColor  = "#ff0000"
)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional. Colours without an alpha component are opaque.
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimSpace(hex)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if s[0] != '#' {
		s = "#" + s
	}

	alpha := uint8(255)
	switch len(s) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return premultiply(r, g, b, alpha), nil
}

// premultiply returns the alpha-premultiplied form color.RGBA requires.
func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	m := func(v uint8) uint8 { return uint8((uint32(v)*uint32(a) + 127) / 255) }
	return color.RGBA{R: m(r), G: m(g), B: m(b), A: a}
}

// mustColor parses hex, falling back to def when hex is empty or invalid.
func mustColor(hex, def string) color.RGBA {
	if c, err := ParseColor(hex); err == nil {
		return c
	}
	c, _ := ParseColor(def)
	return c
}

// ColorHex formats c as "#rrggbb", ignoring alpha.
func ColorHex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
