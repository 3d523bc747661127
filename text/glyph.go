package text

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sketch/atlas"
)

// GlyphInfo is the cached placement and metrics of one rune.
// All distances are pixels at the font's base size.
type GlyphInfo struct {
	Rune rune
	// Sprite is the glyph's place in the font atlas. It is empty for
	// glyphs with no ink, such as spaces.
	Sprite atlas.Sprite
	// BearingX and BearingY offset the sprite's top-left corner from the
	// pen position on the baseline. BearingY is negative above the baseline.
	BearingX, BearingY float64
	// Advance moves the pen to the next glyph.
	Advance float64
}

// Width returns the sprite width in pixels.
func (g *GlyphInfo) Width() int { return g.Sprite.W }

// Height returns the sprite height in pixels.
func (g *GlyphInfo) Height() int { return g.Sprite.H }

// rendered is a rasterized glyph waiting for atlas space.
type rendered struct {
	img                *image.RGBA
	bearingX, bearingY float64
	advance            float64
}

// render rasterizes r into a premultiplied white RGBA image whose alpha is
// coverage, or a distance field for SDF fonts.
func (f *Font) render(r rune) (*rendered, error) {
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, ErrNoGlyph
	}
	f.generated++

	out := &rendered{
		bearingX: float64(dr.Min.X),
		bearingY: float64(dr.Min.Y),
		advance:  fixedToFloat(advance),
	}

	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 || mask == nil {
		out.img = image.NewRGBA(image.Rectangle{})
		return out, nil
	}

	// The face reuses its mask buffer, so copy the coverage out now.
	cov := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(cov, cov.Bounds(), mask, maskp, draw.Src)

	if f.sdf {
		s := f.spread
		out.img = distanceField(cov, s)
		out.bearingX -= float64(s)
		out.bearingY -= float64(s)
		return out, nil
	}

	img := image.NewRGBA(cov.Bounds())
	for i, a := range cov.Pix {
		img.Pix[i*4+0] = a
		img.Pix[i*4+1] = a
		img.Pix[i*4+2] = a
		img.Pix[i*4+3] = a
	}
	out.img = img
	return out, nil
}
