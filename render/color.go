package render

import (
	"fmt"
	"image/color"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into an RGBA
// color. Invalid input falls back to opaque black so a malformed theme
// field never breaks a render.
func ParseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 0xff}

	hexByte := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	pair := func(hi, lo byte) (uint8, bool) {
		h, ok1 := hexByte(hi)
		l, ok2 := hexByte(lo)
		return h<<4 | l, ok1 && ok2
	}

	if len(s) == 0 || s[0] != '#' {
		return c
	}
	s = s[1:]

	var ok bool
	switch len(s) {
	case 3:
		var r, g, b uint8
		r, ok = pair(s[0], s[0])
		if ok {
			g, _ = pair(s[1], s[1])
			b, _ = pair(s[2], s[2])
			c.R, c.G, c.B = r, g, b
		}
	case 6, 8:
		var r, g, b uint8
		r, ok = pair(s[0], s[1])
		if ok {
			g, _ = pair(s[2], s[3])
			b, _ = pair(s[4], s[5])
			c.R, c.G, c.B = r, g, b
		}
		if ok && len(s) == 8 {
			if a, okA := pair(s[6], s[7]); okA {
				c.A = a
			}
		}
	}
	return c
}

// WithAlpha returns the color with its alpha channel replaced by
// round(a*255), a in [0,1].
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// MustHex is ParseHexColor for compile-time palette constants used by the
// empty-state and placeholder art.
func MustHex(s string) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		panic(fmt.Sprintf("bad hex color %q", s))
	}
	return ParseHexColor(s)
}
