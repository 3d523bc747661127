package sketch

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/sketch/atlas"
	"github.com/gogpu/sketch/batch"
	"github.com/gogpu/sketch/internal/tess"
)

// Image is a texture owned by a Context.
type Image struct {
	ctx      *Context
	id       batch.ImageID
	tex      batch.Texture
	w, h     int
	released bool
}

// ID returns the stable identifier of the image.
func (img *Image) ID() batch.ImageID { return img.id }

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.w }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.h }

// Bounds returns the image rectangle.
func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.w, img.h) }

// Update replaces the image contents with src. Pending draws of the old
// contents are flushed first.
func (img *Image) Update(src image.Image) error {
	if img.released {
		return ErrReleased
	}
	if p, ok := img.ctx.reg.Lookup(batch.ShaderImage, img.id); ok {
		if err := p.Flush(); err != nil {
			return err
		}
	}
	rgba := toRGBA(src)
	b := rgba.Bounds()
	if b.Empty() {
		return ErrInvalidSize
	}
	if err := img.tex.Upload(rgba.Pix, b.Dx(), b.Dy(), 4); err != nil {
		return fmt.Errorf("sketch: upload image: %w", err)
	}
	img.w, img.h = b.Dx(), b.Dy()
	return nil
}

// Release flushes and drops the pipelines that draw the image.
func (img *Image) Release() error {
	if img.released {
		return nil
	}
	img.released = true
	return img.ctx.reg.ReleaseImage(img.id)
}

// NewImage uploads src as a texture.
func (c *Context) NewImage(src image.Image) (*Image, error) {
	rgba := toRGBA(src)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, ErrInvalidSize
	}
	tex, err := c.dev.NewTexture(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("sketch: create texture: %w", err)
	}
	if err := tex.Upload(rgba.Pix, b.Dx(), b.Dy(), 4); err != nil {
		return nil, fmt.Errorf("sketch: upload image: %w", err)
	}
	return &Image{ctx: c, id: c.mintID(), tex: tex, w: b.Dx(), h: b.Dy()}, nil
}

// toRGBA returns src as a tightly packed RGBA image at the origin.
func toRGBA(src image.Image) *image.RGBA {
	if m, ok := src.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) && m.Stride == 4*m.Rect.Dx() {
		return m
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst
}

// Image draws the current texture, region or sprite into the rectangle
// (x, y, w, h), multiplied by the tint. A non-positive w or h uses the
// source size. It panics if no texture is selected.
func (c *Context) Image(x, y, w, h float64) {
	if c.hidden {
		return
	}
	if s := c.style.Sprite; s.Atlas != nil {
		c.Sprite(s, x, y, w, h)
		return
	}
	img := c.style.Texture
	if img == nil {
		panic("sketch: Image with no texture selected")
	}
	if img.released {
		c.latch(ErrReleased)
		return
	}

	r := c.style.Region
	if r.Empty() {
		r = img.Bounds()
	}
	if w <= 0 || h <= 0 {
		w, h = float64(r.Dx()), float64(r.Dy())
	}
	p, err := c.reg.For(batch.ShaderImage, img.id, img.tex)
	if err != nil {
		c.latch(err)
		return
	}
	c.use(p)
	uv := tess.SubUV(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()),
		float64(img.w), float64(img.h))
	tess.TexQuad(c.reg, x, y, w, h, uv, nrgba(c.style.Tint))
}

// Sprite draws an atlas placement into the rectangle (x, y, w, h),
// multiplied by the tint. A non-positive w or h uses the sprite size.
func (c *Context) Sprite(s atlas.Sprite, x, y, w, h float64) {
	if c.hidden || s.Atlas == nil || s.Empty() {
		return
	}
	b, err := c.bind(s.Atlas)
	if err != nil {
		c.latch(err)
		return
	}
	if w <= 0 || h <= 0 {
		w, h = float64(s.W), float64(s.H)
	}
	p, err := c.reg.For(batch.ShaderImage, b.id, b.tex)
	if err != nil {
		c.latch(err)
		return
	}
	c.use(p)
	c.latch(s.Atlas.Sync(b.tex))
	u0, v0, u1, v1 := s.UV()
	tess.TexQuad(c.reg, x, y, w, h, tess.UV{U0: u0, V0: v0, U1: u1, V1: v1}, nrgba(c.style.Tint))
}

// NewAtlas creates an atlas bound to this Context. The Context's atlas
// size options apply before opts.
func (c *Context) NewAtlas(opts ...atlas.Option) (*atlas.Atlas, error) {
	a, err := atlas.New(append(c.opts.atlasOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	if _, err := c.bind(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Submit places img into a, growing the atlas if it is full. Draws that
// sample the atlas are flushed before it grows.
func (c *Context) Submit(a *atlas.Atlas, img image.Image) (atlas.Sprite, error) {
	b, err := c.bind(a)
	if err != nil {
		return atlas.Sprite{}, err
	}
	return a.Submit(img, func() error { return c.flushAtlas(a, b) })
}

// ReleaseAtlas flushes and drops the pipelines that draw a.
func (c *Context) ReleaseAtlas(a *atlas.Atlas) error {
	b, ok := c.bindings[a]
	if !ok {
		return nil
	}
	delete(c.bindings, a)
	return c.reg.ReleaseImage(b.id)
}

// bind returns the texture binding of a, creating it on first use.
func (c *Context) bind(a *atlas.Atlas) (*binding, error) {
	if b, ok := c.bindings[a]; ok {
		return b, nil
	}
	tex, err := c.dev.NewTexture(a.Size(), a.Size())
	if err != nil {
		return nil, fmt.Errorf("sketch: create atlas texture: %w", err)
	}
	b := &binding{id: c.mintID(), tex: tex}
	c.bindings[a] = b
	return b, nil
}

// flushAtlas uploads a and submits every pending draw that samples it,
// so the atlas can grow without invalidating their texture coordinates.
func (c *Context) flushAtlas(a *atlas.Atlas, b *binding) error {
	if err := a.Sync(b.tex); err != nil {
		return fmt.Errorf("sketch: upload atlas: %w", err)
	}
	for _, kind := range []batch.ShaderKind{batch.ShaderImage, batch.ShaderFont, batch.ShaderSDF} {
		if p, ok := c.reg.Lookup(kind, b.id); ok {
			if err := p.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
