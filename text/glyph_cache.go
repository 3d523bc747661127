package text

import (
	"errors"

	"github.com/gogpu/sketch/atlas"
)

// Glyph returns the cached glyph for r, rasterizing and placing it on
// first use. When the atlas has no room it returns atlas.ErrFull and keeps
// the rasterized glyph; the caller should flush draws that sample the
// atlas and call GrowAndPlace.
func (f *Font) Glyph(r rune) (*GlyphInfo, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}

	rg, err := f.rendered(r)
	if err != nil {
		return nil, err
	}
	s, ok := f.atlas.TryPlace(rg.img)
	if !ok {
		return nil, atlas.ErrFull
	}
	return f.store(r, rg, s), nil
}

// GrowAndPlace grows the atlas and places r. It returns the cached glyph
// unchanged if r is already placed.
func (f *Font) GrowAndPlace(r rune) (*GlyphInfo, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}

	rg, err := f.rendered(r)
	if err != nil {
		return nil, err
	}
	s, err := f.atlas.GrowAndPlace(rg.img)
	if err != nil {
		return nil, err
	}
	slogger().Debug("text: atlas grown for glyph", "rune", string(r), "size", f.atlas.Size())
	return f.store(r, rg, s), nil
}

// GlyphFlush is Glyph with the two placement phases joined: flush is
// called before the atlas grows.
func (f *Font) GlyphFlush(r rune, flush func() error) (*GlyphInfo, error) {
	g, err := f.Glyph(r)
	if !errors.Is(err, atlas.ErrFull) {
		return g, err
	}
	if flush != nil {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return f.GrowAndPlace(r)
}

// Lookup returns the glyph for r only if it is already cached.
func (f *Font) Lookup(r rune) (*GlyphInfo, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Cached returns the number of cached glyphs.
func (f *Font) Cached() int { return len(f.glyphs) }

// Generated returns how many glyphs have been rasterized.
func (f *Font) Generated() int { return f.generated }

// rendered returns the pending rasterization of r, rendering it if needed.
func (f *Font) rendered(r rune) (*rendered, error) {
	if rg, ok := f.pending[r]; ok {
		return rg, nil
	}
	rg, err := f.render(r)
	if err != nil {
		return nil, err
	}
	f.pending[r] = rg
	return rg, nil
}

func (f *Font) store(r rune, rg *rendered, s atlas.Sprite) *GlyphInfo {
	delete(f.pending, r)
	g := &GlyphInfo{
		Rune:     r,
		Sprite:   s,
		BearingX: rg.bearingX,
		BearingY: rg.bearingY,
		Advance:  rg.advance,
	}
	f.glyphs[r] = g
	return g
}

// Reset forgets every cached glyph and clears the atlas.
func (f *Font) Reset() {
	clear(f.glyphs)
	clear(f.pending)
	f.shaped.clear()
	f.atlas.Reset()
}
