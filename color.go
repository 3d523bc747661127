package sketch

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a color in the RGB or HSL model. Its dynamic type is always
// RGBA or HSLA. Colors also satisfy color.Color.
type Color interface {
	color.Color
	// ToRGBA converts the color to 8-bit RGBA.
	ToRGBA() RGBA
	isColor()
}

// RGBA is a straight-alpha color with 8-bit channels.
type RGBA struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 0xff}
}

// ToRGBA returns c.
func (c RGBA) ToRGBA() RGBA { return c }

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns c as a standard library color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// HSLA converts c to the HSL model.
func (c RGBA) HSLA() HSLA {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	hi := max(r, g, b)
	lo := min(r, g, b)
	l := (hi + lo) / 2
	if hi == lo {
		return HSLA{L: l, A: c.A}
	}

	d := hi - lo
	var s float64
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSLA{H: h / 6 * 2 * math.Pi, S: s, L: l, A: c.A}
}

// String returns the color as "#rrggbbaa".
func (c RGBA) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (RGBA) isColor() {}

// HSLA is a color in the HSL model. H is the hue in radians, S and L are
// in [0, 1] and A is the 8-bit alpha.
type HSLA struct {
	H, S, L float64
	A       uint8
}

// HSL returns an opaque HSL color.
func HSL(h, s, l float64) HSLA {
	return HSLA{H: h, S: s, L: l, A: 0xff}
}

// ToRGBA converts c to RGB. Hue wraps, saturation and lightness are
// clamped to [0, 1].
func (c HSLA) ToRGBA() RGBA {
	s := clamp01(c.S)
	l := clamp01(c.L)
	h := math.Mod(c.H/(2*math.Pi), 1)
	if h < 0 {
		h++
	}
	if math.IsNaN(h) {
		h = 0
	}

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
	return RGBA{R: to8(r), G: to8(g), B: to8(b), A: c.A}
}

// RGBA implements color.Color.
func (c HSLA) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA().RGBA()
}

func (HSLA) isColor() {}

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
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(v, 1))
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// nrgba converts any Color to the vertex color format.
func nrgba(c Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return c.ToRGBA().NRGBA()
}

// FromColor converts a standard library color.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Hex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". The leading '#'
// is optional.
func Hex(s string) (RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("sketch: invalid hex color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("sketch: invalid hex color %q: %w", s, err)
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Transparent = RGBA{}
)
