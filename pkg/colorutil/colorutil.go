// Package colorutil provides shared color utilities for the editor.
package colorutil

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Colors used by selection adornments and defaults.
var (
	Black       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Selection   = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 255} // #3498db
	Handle      = color.RGBA{R: 0x4c, G: 0xa0, B: 0xff, A: 255} // #4CA0FF
	Danger      = color.RGBA{R: 0xff, G: 0x4c, B: 0x4c, A: 255} // #FF4C4C
	TextOutline = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 255} // #4CAF50
)

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading # is optional).
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseHexOr is ParseHex that returns fallback when s does not parse.
func ParseHexOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// MustParseHex is like ParseHex but panics if s does not parse. It is meant
// for color literals.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHex formats an opaque color as "#rrggbb".
func ToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// WithAlpha returns c with its alpha replaced by a (0-1).
func WithAlpha(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// DistanceSq returns the squared RGB distance between two colors.
func DistanceSq(a, b color.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// Quantize rounds each channel to the nearest multiple of step and drops alpha.
// Used to bucket near-identical border pixels together.
func Quantize(c color.RGBA, step int) color.RGBA {
	q := func(v uint8) uint8 {
		n := (int(v) + step/2) / step * step
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return color.RGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: 255}
}

// Random returns a random opaque color from r.
func Random(r *rand.Rand) color.RGBA {
	return color.RGBA{R: uint8(r.IntN(256)), G: uint8(r.IntN(256)), B: uint8(r.IntN(256)), A: 255}
}
