package sketch

import (
	"image"

	"github.com/gogpu/sketch/atlas"
	"github.com/gogpu/sketch/internal/tess"
	"github.com/gogpu/sketch/text"
)

// ArcMode selects how the fill of a partial arc is closed.
type ArcMode uint8

const (
	// OpenPie fills the sector between the arc and its center.
	OpenPie ArcMode = iota
	// OpenChord fills the region between the arc and its chord.
	OpenChord
)

// Style is the drawing state a shape call reads.
type Style struct {
	Fill        bool
	FillColor   Color
	Stroke      bool
	StrokeColor Color
	// Weight is the stroke thickness in pixels.
	Weight float64
	// Tint multiplies image, sprite and text pixels.
	Tint    Color
	Quality Level

	Font *text.Font
	// TextSize is the pixel size of drawn text. Zero uses the font's size.
	TextSize float64
	// Shaping lays out text with the HarfBuzz shaper instead of plain
	// advances and kerning.
	Shaping bool

	// Texture is the image drawn by Context.Image. Region selects part of
	// it; the zero rectangle means the whole image.
	Texture *Image
	Region  image.Rectangle
	// Sprite, when it has an atlas, is drawn by Context.Image instead of
	// Texture.
	Sprite atlas.Sprite
}

// DefaultStyle returns the style of a new Context: white fill, black
// stroke of weight 1, white tint.
func DefaultStyle() Style {
	return Style{
		Fill:        true,
		FillColor:   White,
		Stroke:      true,
		StrokeColor: Black,
		Weight:      1,
		Tint:        White,
		Quality:     Medium,
	}
}

func (s *Style) paint() tess.Paint {
	return tess.Paint{
		Fill:        s.Fill,
		FillColor:   nrgba(s.FillColor),
		Stroke:      s.Stroke,
		StrokeColor: nrgba(s.StrokeColor),
		Weight:      s.Weight,
		Quality:     s.Quality.Factor(),
	}
}

// SetFill enables filling with c.
func (c *Context) SetFill(col Color) {
	c.style.Fill = true
	c.style.FillColor = col
}

// NoFill disables filling.
func (c *Context) NoFill() { c.style.Fill = false }

// SetStroke enables stroking with col.
func (c *Context) SetStroke(col Color) {
	c.style.Stroke = true
	c.style.StrokeColor = col
}

// NoStroke disables stroking.
func (c *Context) NoStroke() { c.style.Stroke = false }

// SetTint sets the color images, sprites and text are multiplied by.
func (c *Context) SetTint(col Color) { c.style.Tint = col }

// NoTint resets the tint to white.
func (c *Context) NoTint() { c.style.Tint = White }

// SetWeight sets the stroke thickness. Negative values clamp to 0.
func (c *Context) SetWeight(w float64) { c.style.Weight = max(0, w) }

// SetQuality sets the tessellation quality for curves.
func (c *Context) SetQuality(l Level) { c.style.Quality = l }

// SetFont selects the font used by Text.
func (c *Context) SetFont(f *text.Font) { c.style.Font = f }

// SetTextSize sets the pixel size of drawn text.
func (c *Context) SetTextSize(size float64) { c.style.TextSize = max(0, size) }

// SetShaping toggles HarfBuzz shaping for Text.
func (c *Context) SetShaping(on bool) { c.style.Shaping = on }

// SetTexture selects the whole of img for Image.
func (c *Context) SetTexture(img *Image) {
	c.style.Texture = img
	c.style.Region = image.Rectangle{}
	c.style.Sprite = atlas.Sprite{}
}

// SetTextureRegion selects the pixel rectangle (x, y, w, h) of img for
// Image.
func (c *Context) SetTextureRegion(img *Image, x, y, w, h int) {
	c.style.Texture = img
	c.style.Region = image.Rect(x, y, x+w, y+h)
	c.style.Sprite = atlas.Sprite{}
}

// SetSprite selects an atlas placement for Image.
func (c *Context) SetSprite(s atlas.Sprite) {
	c.style.Texture = nil
	c.style.Region = image.Rectangle{}
	c.style.Sprite = s
}

// Style returns a copy of the current style.
func (c *Context) Style() Style { return c.style }

// SetStyle replaces the current style.
func (c *Context) SetStyle(s Style) { c.style = s }

// Push saves the current style.
func (c *Context) Push() {
	c.stack = append(c.stack, c.style)
}

// Pop restores the style saved by the matching Push.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		panic("sketch: Pop without matching Push")
	}
	n := len(c.stack) - 1
	c.style = c.stack[n]
	c.stack = c.stack[:n]
}
