package sketch

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/sketch/atlas"
	"github.com/gogpu/sketch/batch"
)

// Context is the drawing state of one render surface.
// A Context is not safe for concurrent use.
type Context struct {
	dev   batch.Device
	reg   *batch.Registry
	opts  contextOptions
	style Style
	stack []Style

	// err is the first error from an implicit flush.
	err error

	nextID   batch.ImageID
	bindings map[*atlas.Atlas]*binding
	clip     image.Rectangle
	hidden   bool
}

// binding ties an atlas to the GPU texture that mirrors it.
type binding struct {
	id  batch.ImageID
	tex batch.Texture
}

// NewContext creates a Context drawing on dev.
func NewContext(dev batch.Device, opts ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	if o.atlasSize <= 0 || o.maxAtlasSize <= 0 {
		return nil, ErrInvalidSize
	}

	reg, err := batch.NewRegistry(dev)
	if err != nil {
		return nil, fmt.Errorf("sketch: %w", err)
	}
	c := &Context{
		dev:      dev,
		reg:      reg,
		opts:     o,
		style:    DefaultStyle(),
		bindings: make(map[*atlas.Atlas]*binding),
	}
	c.style.Quality = o.quality
	w, h := dev.Viewport()
	Logger().Debug("sketch: context created", "width", w, "height", h)
	return c, nil
}

// Device returns the device the Context draws on.
func (c *Context) Device() batch.Device { return c.dev }

// Size returns the surface size in pixels.
func (c *Context) Size() (width, height int) { return c.dev.Viewport() }

// Err returns the first error from an implicit flush since the last
// FlushAll.
func (c *Context) Err() error { return c.err }

// latch records err if no error is pending.
func (c *Context) latch(err error) {
	if err == nil || c.err != nil {
		return
	}
	c.err = err
	Logger().Warn("sketch: draw error", "err", err)
}

func (c *Context) use(p *batch.Pipeline) {
	c.latch(c.reg.Use(p))
}

// Flush submits the vertices of the active pipeline.
func (c *Context) Flush() error {
	return c.reg.Flush()
}

// FlushAll submits every pending vertex. It returns and clears any error
// latched by an earlier implicit flush, joined with its own.
func (c *Context) FlushAll() error {
	err := errors.Join(c.err, c.reg.FlushAll())
	c.err = nil
	return err
}

// Stats returns the GPU work issued since the last ResetStats.
func (c *Context) Stats() batch.Stats { return c.reg.Stats() }

// ResetStats zeroes the statistics, typically once per frame.
func (c *Context) ResetStats() { c.reg.ResetStats() }

// Clear flushes pending draws and clears the surface to col. A nil col
// uses the WithClearColor option, or transparent black. Devices that do
// not implement batch.Clearer are cleared with a full-surface rectangle,
// which blends rather than replaces for translucent colors.
func (c *Context) Clear(col Color) error {
	if col == nil {
		col = c.opts.clear
	}
	if col == nil {
		col = Transparent
	}
	if err := c.FlushAll(); err != nil {
		return err
	}
	if cl, ok := c.dev.(batch.Clearer); ok {
		return cl.Clear(nrgba(col))
	}

	w, h := c.dev.Viewport()
	c.Push()
	c.NoStroke()
	c.SetFill(col)
	c.Rect(0, 0, float64(w), float64(h))
	c.Pop()
	return c.reg.Flush()
}

// Close releases every pipeline without drawing pending vertices.
func (c *Context) Close() {
	c.reg.Destroy()
	clear(c.bindings)
}

func (c *Context) mintID() batch.ImageID {
	c.nextID++
	return c.nextID
}
