package entities

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// HSL is a hue/saturation/lightness triple. Hue is in degrees [0, 360),
// saturation and lightness are percentages [0, 100]. Group colors are
// stored as hex strings and edited through this representation.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ParseHexColor converts a "#rrggbb" string to HSL.
func ParseHexColor(hex string) (HSL, error) {
	if !hexColorPattern.MatchString(hex) {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	hex = strings.TrimPrefix(hex, "#")

	r64, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g64, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b64, _ := strconv.ParseUint(hex[4:6], 16, 8)

	r := float64(r64) / 255
	g := float64(g64) / 255
	b := float64(b64) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return HSL{H: h, S: s * 100, L: l * 100}, nil
}

// Hex converts the HSL triple back to a "#rrggbb" string.
func (c HSL) Hex() string {
	h := math.Mod(c.H, 360) / 360
	if h < 0 {
		h += 1
	}
	s := clamp01(c.S / 100)
	l := clamp01(c.L / 100)

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(r*255)),
		int(math.Round(g*255)),
		int(math.Round(b*255)))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
