// Package text renders glyphs into a texture atlas on demand and lays out
// strings for batched drawing.
//
// A Font parses an OpenType/TrueType file with golang.org/x/image and
// rasterizes each rune the first time it is requested, either as a
// coverage bitmap or as a signed distance field. Glyphs are packed into the
// font's atlas.Atlas and cached for the font's lifetime.
//
// Placement follows the atlas two-phase protocol. Glyph returns
// atlas.ErrFull when the atlas has no room; the caller flushes any draws
// that sample the atlas and then calls GrowAndPlace:
//
//	g, err := f.Glyph(r)
//	if errors.Is(err, atlas.ErrFull) {
//	    flush()
//	    g, err = f.GrowAndPlace(r)
//	}
//
// Layout positions runes using advances and pair kerning. Shape does the
// same through the HarfBuzz shaper from github.com/go-text/typesetting.
package text
