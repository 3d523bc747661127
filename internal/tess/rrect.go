package tess

import (
	"math"

	"github.com/gogpu/sketch/geom"
)

// RoundedRect emits a rectangle with independent corner radii, given
// clockwise from the top-left corner. Radii are clamped to half the
// shorter side. With all radii zero the fill is exactly the fill of Rect.
func (e Emitter) RoundedRect(x, y, w, h, tl, tr, br, bl float64) {
	x, y, w, h = normRect(x, y, w, h)
	limit := math.Min(w, h) / 2
	clamp := func(r float64) float64 {
		return math.Max(0, math.Min(r, limit))
	}
	tl, tr, br, bl = clamp(tl), clamp(tr), clamp(br), clamp(bl)

	// Arc centers, inset from each corner by its radius.
	ptl := geom.V(x+tl, y+tl)
	ptr := geom.V(x+w-tr, y+tr)
	pbr := geom.V(x+w-br, y+h-br)
	pbl := geom.V(x+bl, y+h-bl)

	const q = math.Pi / 2
	e.arc(ptl, tl, tl, math.Pi, q, e.p.Fill, false)
	e.arc(ptr, tr, tr, -q, q, e.p.Fill, false)
	e.arc(pbr, br, br, 0, q, e.p.Fill, false)
	e.arc(pbl, bl, bl, q, q, e.p.Fill, false)

	if e.p.Fill {
		col := e.p.FillColor
		e.quad(ptl, ptr, pbr, pbl, col)

		// Walls between the body and the straight edges.
		if tl > 0 || tr > 0 {
			e.quad(geom.V(ptl.X, y), geom.V(ptr.X, y), ptr, ptl, col)
		}
		if tr > 0 || br > 0 {
			e.quad(ptr, geom.V(x+w, ptr.Y), geom.V(x+w, pbr.Y), pbr, col)
		}
		if br > 0 || bl > 0 {
			e.quad(pbl, pbr, geom.V(pbr.X, y+h), geom.V(pbl.X, y+h), col)
		}
		if bl > 0 || tl > 0 {
			e.quad(geom.V(x, ptl.Y), ptl, pbl, geom.V(x, pbl.Y), col)
		}
	}

	if e.p.Stroking() {
		s := e.p.Weight
		col := e.p.StrokeColor
		e.quad(geom.V(ptl.X, y), geom.V(ptr.X, y), geom.V(ptr.X, y-s), geom.V(ptl.X, y-s), col)
		e.quad(geom.V(x+w, ptr.Y), geom.V(x+w, pbr.Y), geom.V(x+w+s, pbr.Y), geom.V(x+w+s, ptr.Y), col)
		e.quad(geom.V(pbr.X, y+h), geom.V(pbl.X, y+h), geom.V(pbl.X, y+h+s), geom.V(pbr.X, y+h+s), col)
		e.quad(geom.V(x, pbl.Y), geom.V(x, ptl.Y), geom.V(x-s, ptl.Y), geom.V(x-s, pbl.Y), col)
	}
}
