package sketch

import (
	"math"

	"github.com/gogpu/sketch/geom"
	"github.com/gogpu/sketch/internal/tess"
)

// shape activates the color pipeline and returns an emitter with the
// current style. It reports false when the style draws nothing.
func (c *Context) shape() (tess.Emitter, bool) {
	return c.emitter(true)
}

// stroke is shape for primitives that never fill, so a fill-only style
// leaves the active pipeline alone.
func (c *Context) stroke() (tess.Emitter, bool) {
	return c.emitter(false)
}

func (c *Context) emitter(fills bool) (tess.Emitter, bool) {
	p := c.style.paint()
	if c.hidden || !(fills && p.Fill) && !p.Stroking() {
		return tess.Emitter{}, false
	}
	c.use(c.reg.Color())
	return tess.New(c.reg, p), true
}

// Arc draws an elliptical arc centered at (x, y) with radii rx and ry,
// starting at angle start and sweeping by sweep radians.
func (c *Context) Arc(x, y, rx, ry, start, sweep float64, mode ArcMode) {
	if e, ok := c.shape(); ok {
		e.Arc(x, y, rx, ry, start, sweep, mode == OpenChord)
	}
}

// Circle draws a circle of radius r centered at (x, y).
func (c *Context) Circle(x, y, r float64) {
	c.Ellipse(x, y, r, r)
}

// Ellipse draws an ellipse centered at (x, y).
func (c *Context) Ellipse(x, y, rx, ry float64) {
	if e, ok := c.shape(); ok {
		e.Ellipse(x, y, rx, ry)
	}
}

// Point draws a dot of diameter Weight in the stroke color.
func (c *Context) Point(x, y float64) {
	if e, ok := c.stroke(); ok {
		e.Point(x, y)
	}
}

// Line draws a stroke of thickness Weight from (x1, y1) to (x2, y2).
func (c *Context) Line(x1, y1, x2, y2 float64) {
	if e, ok := c.stroke(); ok {
		e.Line(x1, y1, x2, y2)
	}
}

// Triangle draws a triangle with mitered stroke corners.
func (c *Context) Triangle(x1, y1, x2, y2, x3, y3 float64) {
	if e, ok := c.shape(); ok {
		e.Triangle(geom.V(x1, y1), geom.V(x2, y2), geom.V(x3, y3))
	}
}

// Quad draws a convex quadrilateral with mitered stroke corners.
func (c *Context) Quad(x1, y1, x2, y2, x3, y3, x4, y4 float64) {
	if e, ok := c.shape(); ok {
		e.Quad(geom.V(x1, y1), geom.V(x2, y2), geom.V(x3, y3), geom.V(x4, y4))
	}
}

// Polygon draws a convex polygon with mitered stroke corners. Fewer than
// three points draw nothing.
func (c *Context) Polygon(pts ...geom.Vec2) {
	if len(pts) < 3 {
		return
	}
	if e, ok := c.shape(); ok {
		e.Polygon(pts...)
	}
}

// Rect draws an axis-aligned rectangle with its top-left corner at (x, y).
func (c *Context) Rect(x, y, w, h float64) {
	if e, ok := c.shape(); ok {
		e.Rect(x, y, w, h)
	}
}

// Square draws a square with its top-left corner at (x, y).
func (c *Context) Square(x, y, size float64) {
	c.Rect(x, y, size, size)
}

// RoundedRect draws a rectangle whose corners are rounded with radius r.
func (c *Context) RoundedRect(x, y, w, h, r float64) {
	c.RoundedRectRadii(x, y, w, h, r, r, r, r)
}

// RoundedRectRadii draws a rectangle with independent corner radii given
// clockwise from the top-left corner.
func (c *Context) RoundedRectRadii(x, y, w, h, tl, tr, br, bl float64) {
	if e, ok := c.shape(); ok {
		e.RoundedRect(x, y, w, h, tl, tr, br, bl)
	}
}

// Bezier strokes the cubic curve from (ax, ay) to (dx, dy) with control
// points (bx, by) and (cx, cy). Curves are never filled.
func (c *Context) Bezier(ax, ay, bx, by, cx, cy, dx, dy float64) {
	if e, ok := c.stroke(); ok {
		e.Bezier(geom.V(ax, ay), geom.V(bx, by), geom.V(cx, cy), geom.V(dx, dy))
	}
}

// BezierPoint returns the point at t on the cubic curve a, b, c, d.
func (c *Context) BezierPoint(a, b, cp, d geom.Vec2, t float64) geom.Vec2 {
	return geom.CubicPoint(a, b, cp, d, t)
}

// BezierTangent returns the derivative at t of the cubic curve a, b, c, d.
func (c *Context) BezierTangent(a, b, cp, d geom.Vec2, t float64) geom.Vec2 {
	return geom.CubicTangent(a, b, cp, d, t)
}

// HalfPi, Pi and Tau are common sweep angles.
const (
	HalfPi = math.Pi / 2
	Pi     = math.Pi
	Tau    = 2 * math.Pi
)
