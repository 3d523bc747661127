package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Placement is the pen position of one rune, in pixels relative to the
// start of the first baseline, scaled to the requested size.
type Placement struct {
	Rune rune
	X, Y float64
	// Advance is the scaled distance to the next pen position.
	Advance float64
}

// Layout positions the runes of s for drawing at size pixels. The string
// is normalized to NFC first. Pair kerning adjusts horizontal positions
// only. A newline starts a new line LineHeight below.
func (f *Font) Layout(s string, size float64) []Placement {
	s = norm.NFC.String(s)
	scale := size / f.size
	line := f.metrics.LineHeight * scale

	out := make([]Placement, 0, len(s))
	var x, y float64
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			x = 0
			y += line
			prev = -1
			continue
		}
		if prev >= 0 {
			x += f.Kern(prev, r) * scale
		}
		adv := f.Advance(r) * scale
		out = append(out, Placement{Rune: r, X: x, Y: y, Advance: adv})
		x += adv
		prev = r
	}
	return out
}

// Measure returns the width of the widest line of s and the total height
// of its lines at size pixels.
func (f *Font) Measure(s string, size float64) (width, height float64) {
	scale := size / f.size
	lines := strings.Count(s, "\n") + 1
	for _, p := range f.Layout(s, size) {
		if end := p.X + p.Advance; end > width {
			width = end
		}
	}
	return width, float64(lines) * f.metrics.LineHeight * scale
}
