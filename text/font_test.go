package text

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sketch/atlas"
)

func newTestFont(t *testing.T, opts ...FontOption) *Font {
	t.Helper()
	f, err := NewFont(goregular.TTF, opts...)
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestNewFont_Errors(t *testing.T) {
	if _, err := NewFont(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("nil data: err = %v", err)
	}
	if _, err := NewFont(goregular.TTF, WithSize(0)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero size: err = %v", err)
	}
	if _, err := NewFont([]byte("not a font")); err == nil {
		t.Error("garbage data parsed")
	}
	var ce *atlas.ConfigError
	if _, err := NewFont(goregular.TTF, WithAtlasOptions(atlas.WithInitialSize(0))); !errors.As(err, &ce) {
		t.Errorf("bad atlas option: err = %v", err)
	}
}

func TestFont_Metrics(t *testing.T) {
	f := newTestFont(t, WithSize(20))
	m := f.Metrics()
	if m.Ascent <= 0 || m.LineHeight < m.Ascent {
		t.Errorf("Metrics = %+v", m)
	}
	if f.Size() != 20 || f.SDF() {
		t.Errorf("Size=%v SDF=%v", f.Size(), f.SDF())
	}
	if f.Name() == "" {
		t.Error("Name is empty")
	}
}

func TestGlyph_CachedWithoutRegeneration(t *testing.T) {
	f := newTestFont(t)
	g1, err := f.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	g2, err := f.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 {
		t.Error("second request returned a different GlyphInfo")
	}
	if f.Generated() != 1 || f.Cached() != 1 {
		t.Errorf("Generated=%d Cached=%d, want 1 and 1", f.Generated(), f.Cached())
	}
	if g, ok := f.Lookup('A'); !ok || g != g1 {
		t.Error("Lookup did not return the cached glyph")
	}
	if _, ok := f.Lookup('B'); ok {
		t.Error("Lookup found an uncached glyph")
	}
}

func TestGlyph_Metrics(t *testing.T) {
	f := newTestFont(t)
	g, err := f.Glyph('H')
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() <= 0 || g.Height() <= 0 {
		t.Errorf("sprite %dx%d", g.Width(), g.Height())
	}
	if g.Advance <= 0 || math.Abs(g.Advance-f.Advance('H')) > 1e-9 {
		t.Errorf("Advance = %v, font advance %v", g.Advance, f.Advance('H'))
	}
	if g.BearingY >= 0 {
		t.Errorf("BearingY = %v, want negative (above baseline)", g.BearingY)
	}
	if g.Sprite.Atlas != f.Atlas() || !f.Atlas().Dirty() {
		t.Error("glyph not placed in the font atlas")
	}

	// Coverage is stored as premultiplied white.
	img := f.Atlas().Image()
	var ink bool
	for y := g.Sprite.Y; y < g.Sprite.Y+g.Sprite.H; y++ {
		for x := g.Sprite.X; x < g.Sprite.X+g.Sprite.W; x++ {
			c := img.RGBAAt(x, y)
			if c.A > 0 {
				ink = true
				if c.R != c.A || c.G != c.A || c.B != c.A {
					t.Fatalf("pixel (%d,%d) = %v, want premultiplied white", x, y, c)
				}
			}
		}
	}
	if !ink {
		t.Error("glyph has no coverage")
	}
}

func TestGlyph_Space(t *testing.T) {
	f := newTestFont(t)
	g, err := f.Glyph(' ')
	if err != nil {
		t.Fatal(err)
	}
	if !g.Sprite.Empty() || g.Advance <= 0 {
		t.Errorf("space = %+v", g)
	}
}

func TestGlyph_TwoPhaseGrowth(t *testing.T) {
	f := newTestFont(t, WithSize(48), WithAtlasOptions(atlas.WithInitialSize(16)))

	_, err := f.Glyph('W')
	if !errors.Is(err, atlas.ErrFull) {
		t.Fatalf("err = %v, want atlas.ErrFull", err)
	}
	if f.Cached() != 0 {
		t.Error("glyph cached before placement")
	}

	g, err := f.GrowAndPlace('W')
	if err != nil {
		t.Fatal(err)
	}
	if f.Generated() != 1 {
		t.Errorf("Generated = %d, want 1 (pending glyph reused)", f.Generated())
	}
	if f.Atlas().Size() <= 16 {
		t.Errorf("atlas size = %d, want growth", f.Atlas().Size())
	}
	if again, _ := f.Glyph('W'); again != g {
		t.Error("grown glyph not cached")
	}
}

func TestGlyphFlush(t *testing.T) {
	f := newTestFont(t, WithSize(48), WithAtlasOptions(atlas.WithInitialSize(16)))
	flushes := 0
	flush := func() error { flushes++; return nil }

	if _, err := f.GlyphFlush('M', flush); err != nil {
		t.Fatal(err)
	}
	if _, err := f.GlyphFlush('M', flush); err != nil {
		t.Fatal(err)
	}
	if flushes != 1 {
		t.Errorf("flushes = %d, want 1", flushes)
	}
}

func TestGlyph_SDF(t *testing.T) {
	const spread = 3
	plain := newTestFont(t)
	sdf := newTestFont(t, WithSDF(spread))

	gp, _ := plain.Glyph('I')
	gs, err := sdf.Glyph('I')
	if err != nil {
		t.Fatal(err)
	}
	if gs.Width() != gp.Width()+2*spread || gs.Height() != gp.Height()+2*spread {
		t.Errorf("sdf %dx%d, bitmap %dx%d", gs.Width(), gs.Height(), gp.Width(), gp.Height())
	}
	if gs.BearingX != gp.BearingX-spread {
		t.Errorf("sdf BearingX = %v, want %v", gs.BearingX, gp.BearingX-spread)
	}

	img := sdf.Atlas().Image()
	if a := img.RGBAAt(gs.Sprite.X, gs.Sprite.Y).A; a >= 128 {
		t.Errorf("sdf corner alpha = %d, want outside (< 128)", a)
	}
	cx, cy := gs.Sprite.X+gs.Sprite.W/2, gs.Sprite.Y+gs.Sprite.H/2
	if a := img.RGBAAt(cx, cy).A; a <= 128 {
		t.Errorf("sdf center alpha = %d, want inside (> 128)", a)
	}
}

func TestReset(t *testing.T) {
	f := newTestFont(t)
	_, _ = f.Glyph('a')
	f.Reset()
	if f.Cached() != 0 || f.Atlas().Len() != 0 {
		t.Error("Reset left glyphs behind")
	}
}
