package text

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/norm"
)

// shaper holds the HarfBuzz state for one Font, created on first Shape.
type shaper struct {
	face *font.Face
	hb   shaping.HarfbuzzShaper
}

func (f *Font) goTextShaper() (*shaper, error) {
	if f.shaper != nil {
		return f.shaper, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	f.shaper = &shaper{face: face}
	return f.shaper, nil
}

// Shape positions the runes of s at size pixels using HarfBuzz shaping,
// which applies the font's GPOS kerning and mark positioning. Each output
// glyph is reported under the first rune of its cluster, so ligatures are
// drawn with that rune's glyph. Lines are split on newlines. Results are
// cached per string and size; callers must not modify the returned slice.
func (f *Font) Shape(s string, size float64) ([]Placement, error) {
	s = norm.NFC.String(s)
	key := shapeKey{text: s, size: size}
	if ps, ok := f.shaped.get(key); ok {
		return ps, nil
	}
	sh, err := f.goTextShaper()
	if err != nil {
		return nil, err
	}
	scale := size / f.size
	line := f.metrics.LineHeight * scale

	var out []Placement
	for i, text := range strings.Split(s, "\n") {
		runes := []rune(text)
		if len(runes) == 0 {
			continue
		}
		output := sh.hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: di.DirectionLTR,
			Face:      sh.face,
			Size:      floatToFixed(size),
			Script:    detectScript(runes),
			Language:  language.NewLanguage("en"),
		})

		y := float64(i) * line
		var x float64
		for _, g := range output.Glyphs {
			idx := g.TextIndex()
			if idx < 0 || idx >= len(runes) {
				continue
			}
			adv := fixedToFloat(g.Advance)
			out = append(out, Placement{
				Rune:    runes[idx],
				X:       x + fixedToFloat(g.XOffset),
				Y:       y - fixedToFloat(g.YOffset),
				Advance: adv,
			})
			x += adv
		}
	}
	f.shaped.set(key, out)
	return out, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
