package sketch

import (
	"errors"

	"github.com/gogpu/sketch/batch"
	"github.com/gogpu/sketch/internal/tess"
	"github.com/gogpu/sketch/text"
)

// NewFont parses a font whose glyph atlas is bound to this Context. The
// Context's atlas size options apply before the atlas options in opts.
func (c *Context) NewFont(data []byte, opts ...text.FontOption) (*text.Font, error) {
	all := append([]text.FontOption{text.WithAtlasOptions(c.opts.atlasOptions()...)}, opts...)
	f, err := text.NewFont(data, all...)
	if err != nil {
		return nil, err
	}
	if _, err := c.bind(f.Atlas()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// ReleaseFont flushes and drops the pipelines that draw f.
func (c *Context) ReleaseFont(f *text.Font) error {
	return c.ReleaseAtlas(f.Atlas())
}

// textSize returns the size text is drawn at with the current style.
func (c *Context) textSize() float64 {
	if c.style.TextSize > 0 {
		return c.style.TextSize
	}
	return c.style.Font.Size()
}

// Text draws s with its first baseline starting at (x, y), in the tint
// color. Newlines start a new line. Runes the font has no glyph for are
// skipped. It panics if no font is selected.
func (c *Context) Text(x, y float64, s string) {
	f := c.style.Font
	if f == nil {
		panic("sketch: Text with no font selected")
	}
	if c.hidden {
		return
	}
	size := c.textSize()
	scale := size / f.Size()

	var places []text.Placement
	if c.style.Shaping {
		var err error
		if places, err = f.Shape(s, size); err != nil {
			c.latch(err)
			places = f.Layout(s, size)
		}
	} else {
		places = f.Layout(s, size)
	}
	if len(places) == 0 {
		return
	}

	a := f.Atlas()
	b, err := c.bind(a)
	if err != nil {
		c.latch(err)
		return
	}
	kind := batch.ShaderFont
	if f.SDF() {
		kind = batch.ShaderSDF
	}
	p, err := c.reg.For(kind, b.id, b.tex)
	if err != nil {
		c.latch(err)
		return
	}
	c.use(p)

	tint := nrgba(c.style.Tint)
	grow := func() error { return c.flushAtlas(a, b) }
	for _, pl := range places {
		g, err := f.GlyphFlush(pl.Rune, grow)
		if errors.Is(err, text.ErrNoGlyph) {
			continue
		}
		if err != nil {
			c.latch(err)
			break
		}
		if g.Sprite.Empty() {
			continue
		}
		u0, v0, u1, v1 := g.Sprite.UV()
		tess.TexQuad(c.reg,
			x+pl.X+g.BearingX*scale, y+pl.Y+g.BearingY*scale,
			float64(g.Width())*scale, float64(g.Height())*scale,
			tess.UV{U0: u0, V0: v0, U1: u1, V1: v1}, tint)
	}
	c.latch(a.Sync(b.tex))
}

// TextWidth returns the width of the widest line of s with the current
// font and text size.
func (c *Context) TextWidth(s string) float64 {
	w, _ := c.MeasureText(s)
	return w
}

// MeasureText returns the width and height of s with the current font and
// text size. It panics if no font is selected.
func (c *Context) MeasureText(s string) (width, height float64) {
	if c.style.Font == nil {
		panic("sketch: MeasureText with no font selected")
	}
	return c.style.Font.Measure(s, c.textSize())
}
