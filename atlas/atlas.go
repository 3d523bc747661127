// Package atlas packs small images into one growable square texture.
//
// Placement is two-phase so the caller controls when the texture may
// change under pending draws:
//
//	s, ok := a.TryPlace(img)
//	if !ok {
//	    // flush every batch that samples the atlas
//	    s, err = a.GrowAndPlace(img)
//	}
//
// Submit wraps both phases with a callback for callers that prefer it.
// Placements never overlap and stay valid across growth; only their
// normalized texture coordinates change, so compute UVs at draw time.
package atlas

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/sketch/batch"
)

// Sprite is the placement of one sub-image inside an atlas.
type Sprite struct {
	Atlas *Atlas
	Box
}

// UV returns the sprite's texture coordinates for the atlas's current size.
func (s Sprite) UV() (u0, v0, u1, v1 float64) {
	if s.Atlas == nil || s.Atlas.size == 0 {
		return 0, 0, 1, 1
	}
	n := float64(s.Atlas.size)
	return float64(s.X) / n, float64(s.Y) / n, float64(s.X+s.W) / n, float64(s.Y+s.H) / n
}

// Atlas is a growable square RGBA image with a free-space packer.
// An Atlas is not safe for concurrent use.
type Atlas struct {
	img     *image.RGBA
	packer  packer
	size    int
	maxSize int
	padding int
	count   int
	dirty   bool
}

// New creates an empty atlas.
func New(opts ...Option) (*Atlas, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Atlas{
		img:     image.NewRGBA(image.Rect(0, 0, cfg.size, cfg.size)),
		packer:  newPacker(cfg.size),
		size:    cfg.size,
		maxSize: cfg.maxSize,
		padding: cfg.padding,
		dirty:   true,
	}, nil
}

// Size returns the current edge length in pixels.
func (a *Atlas) Size() int { return a.size }

// MaxSize returns the edge length the atlas may grow to.
func (a *Atlas) MaxSize() int { return a.maxSize }

// Image returns the backing image. It is replaced when the atlas grows.
func (a *Atlas) Image() *image.RGBA { return a.img }

// Len returns the number of placed sub-images.
func (a *Atlas) Len() int { return a.count }

// Boxes returns a copy of the current free boxes.
func (a *Atlas) Boxes() []Box {
	out := make([]Box, 0, len(a.packer.free))
	for _, b := range a.packer.free {
		if !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}

// Utilization returns the fraction of the area that is allocated.
func (a *Atlas) Utilization() float64 {
	total := a.size * a.size
	return float64(total-a.packer.freeArea()) / float64(total)
}

// Dirty reports whether the image changed since the last Sync.
func (a *Atlas) Dirty() bool { return a.dirty }

// MarkClean clears the dirty flag without uploading.
func (a *Atlas) MarkClean() { a.dirty = false }

// TryPlace copies img into free space without growing the atlas.
// It reports false when there is no room; nothing changes in that case.
func (a *Atlas) TryPlace(img image.Image) (Sprite, bool) {
	b := img.Bounds()
	if b.Empty() {
		return Sprite{Atlas: a}, true
	}
	p := a.padding
	box, ok := a.packer.allocate(b.Dx()+2*p, b.Dy()+2*p)
	if !ok {
		return Sprite{}, false
	}

	at := Box{X: box.X + p, Y: box.Y + p, W: b.Dx(), H: b.Dy()}
	draw.Copy(a.img, image.Pt(at.X, at.Y), img, b, draw.Src, nil)
	a.count++
	a.dirty = true
	return Sprite{Atlas: a, Box: at}, true
}

// GrowAndPlace doubles the atlas until img fits, then places it. Existing
// placements keep their pixel positions. It fails with a *SizeError when
// img cannot fit within MaxSize.
func (a *Atlas) GrowAndPlace(img image.Image) (Sprite, error) {
	b := img.Bounds()
	need := max(b.Dx(), b.Dy()) + 2*a.padding
	if need > a.maxSize {
		return Sprite{}, &SizeError{Width: b.Dx(), Height: b.Dy(), Max: a.maxSize}
	}

	for {
		if a.size*2 > a.maxSize {
			if s, ok := a.TryPlace(img); ok {
				return s, nil
			}
			return Sprite{}, &SizeError{Width: b.Dx(), Height: b.Dy(), Max: a.maxSize}
		}
		a.grow()
		if s, ok := a.TryPlace(img); ok {
			return s, nil
		}
	}
}

// Submit places img, growing the atlas if needed. beforeGrow, if not nil,
// is called once before the atlas grows so the caller can flush draws that
// sample it; an error from it aborts the placement.
func (a *Atlas) Submit(img image.Image, beforeGrow func() error) (Sprite, error) {
	if s, ok := a.TryPlace(img); ok {
		return s, nil
	}
	if beforeGrow != nil {
		if err := beforeGrow(); err != nil {
			return Sprite{}, err
		}
	}
	return a.GrowAndPlace(img)
}

func (a *Atlas) grow() {
	n := a.size * 2
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	draw.Copy(img, image.Point{}, a.img, a.img.Bounds(), draw.Src, nil)
	a.img = img
	a.packer.grow()
	a.size = n
	a.dirty = true
	slogger().Debug("atlas: grown", "size", n, "sprites", a.count)
}

// Sync uploads the image to tex if it changed since the last Sync.
func (a *Atlas) Sync(tex batch.Texture) error {
	if !a.dirty {
		return nil
	}
	if err := tex.Upload(a.img.Pix, a.size, a.size, 4); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// Reset forgets every placement and clears the image. The size is kept.
func (a *Atlas) Reset() {
	clear(a.img.Pix)
	a.packer = newPacker(a.size)
	a.count = 0
	a.dirty = true
}
