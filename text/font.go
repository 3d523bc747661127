package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sketch/atlas"
)

// Metrics holds vertical font metrics in pixels at the font's base size.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Font is a parsed font with a lazily filled glyph atlas.
// A Font is not safe for concurrent use.
type Font struct {
	data    []byte
	sfnt    *opentype.Font
	face    font.Face
	size    float64
	sdf     bool
	spread  int
	atlas   *atlas.Atlas
	metrics Metrics

	glyphs    map[rune]*GlyphInfo
	pending   map[rune]*rendered
	generated int

	shaper *shaper
	shaped *lru[shapeKey, []Placement]
}

// NewFont parses OpenType or TrueType data. The data slice is retained.
func NewFont(data []byte, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		return nil, ErrInvalidSize
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.size,
		DPI:     72,
		Hinting: cfg.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	a, err := atlas.New(cfg.atlasOpts...)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	m := face.Metrics()
	return &Font{
		data:   data,
		sfnt:   f,
		face:   face,
		size:   cfg.size,
		sdf:    cfg.sdf,
		spread: cfg.spread,
		atlas:  a,
		metrics: Metrics{
			Ascent:     fixedToFloat(m.Ascent),
			Descent:    fixedToFloat(m.Descent),
			LineHeight: fixedToFloat(m.Height),
		},
		glyphs:  make(map[rune]*GlyphInfo),
		pending: make(map[rune]*rendered),
		shaped:  newLRU[shapeKey, []Placement](shapeCacheLimit),
	}, nil
}

// Size returns the pixel size glyphs are rasterized at.
func (f *Font) Size() float64 { return f.size }

// SDF reports whether glyphs are stored as signed distance fields.
func (f *Font) SDF() bool { return f.sdf }

// Atlas returns the glyph atlas.
func (f *Font) Atlas() *atlas.Atlas { return f.atlas }

// Metrics returns the vertical metrics at the base size.
func (f *Font) Metrics() Metrics { return f.metrics }

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	name, err := f.sfnt.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Advance returns the horizontal advance of r in pixels at the base size.
func (f *Font) Advance(r rune) float64 {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return fixedToFloat(adv)
}

// Kern returns the horizontal kerning between a and b in pixels at the
// base size. Fonts without kerning data return 0.
func (f *Font) Kern(a, b rune) float64 {
	return fixedToFloat(f.face.Kern(a, b))
}

// Close releases the font face.
func (f *Font) Close() error {
	return f.face.Close()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
