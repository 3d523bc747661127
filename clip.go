package sketch

import (
	"image"
	"math"
)

// Clip restricts drawing to the rectangle (x, y, w, h). Pending draws are
// flushed first so they keep the previous clip. The rectangle is rounded
// outward to whole pixels and intersected with the surface; if nothing is
// left, every draw is discarded until the clip changes.
func (c *Context) Clip(x, y, w, h float64) error {
	x, y, w, h = normRect(x, y, w, h)
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	sw, sh := c.dev.Viewport()
	r = r.Intersect(image.Rect(0, 0, sw, sh))
	if r.Empty() {
		// Devices treat an empty scissor as no clip at all.
		if err := c.FlushAll(); err != nil {
			return err
		}
		c.hidden = true
		return nil
	}
	c.hidden = false
	return c.setClip(r)
}

// NoClip removes the clip rectangle.
func (c *Context) NoClip() error {
	c.hidden = false
	return c.setClip(image.Rectangle{})
}

// ClipRect returns the current clip rectangle. The zero rectangle means
// drawing is not clipped, unless Clipped reports everything is.
func (c *Context) ClipRect() image.Rectangle { return c.clip }

// Clipped reports whether the clip rectangle excludes the whole surface.
func (c *Context) Clipped() bool { return c.hidden }

func (c *Context) setClip(r image.Rectangle) error {
	if r == c.clip {
		return nil
	}
	if err := c.FlushAll(); err != nil {
		return err
	}
	if err := c.dev.SetClip(r); err != nil {
		return err
	}
	c.clip = r
	return nil
}

func normRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}
