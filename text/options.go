package text

import (
	"golang.org/x/image/font"

	"github.com/gogpu/sketch/atlas"
)

// DefaultSize is the pixel size glyphs are rasterized at.
const DefaultSize = 32

// DefaultSpread is the distance, in pixels, encoded by SDF glyphs on each
// side of the outline.
const DefaultSpread = 4

// FontOption configures Font creation.
type FontOption func(*fontConfig)

type fontConfig struct {
	size      float64
	sdf       bool
	spread    int
	hinting   font.Hinting
	atlasOpts []atlas.Option
}

func defaultFontConfig() fontConfig {
	return fontConfig{
		size:    DefaultSize,
		spread:  DefaultSpread,
		hinting: font.HintingNone,
	}
}

// WithSize sets the pixel size glyphs are rasterized at. Text drawn at
// other sizes is scaled from it.
func WithSize(px float64) FontOption {
	return func(c *fontConfig) {
		c.size = px
	}
}

// WithSDF stores glyphs as signed distance fields with the given spread in
// pixels, which keeps edges sharp when text is scaled up. A spread of 0
// uses DefaultSpread.
func WithSDF(spread int) FontOption {
	return func(c *fontConfig) {
		c.sdf = true
		if spread > 0 {
			c.spread = spread
		}
	}
}

// WithHinting sets the hinting used when rasterizing.
func WithHinting(h font.Hinting) FontOption {
	return func(c *fontConfig) {
		c.hinting = h
	}
}

// WithAtlasOptions configures the glyph atlas.
func WithAtlasOptions(opts ...atlas.Option) FontOption {
	return func(c *fontConfig) {
		c.atlasOpts = append(c.atlasOpts, opts...)
	}
}
