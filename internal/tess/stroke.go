package tess

import (
	"math"

	"github.com/gogpu/sketch/geom"
)

// MiterLimit is the largest distance, in stroke weights, between a corner
// and its miter point before the join is beveled.
const MiterLimit = 10.0

// Line emits a straight stroke of thickness Weight. Zero-length lines draw
// a point.
func (e Emitter) Line(x1, y1, x2, y2 float64) {
	if !e.p.Stroking() {
		return
	}
	p1, p2 := geom.V(x1, y1), geom.V(x2, y2)
	n, ok := geom.SegmentNormal(p1, p2)
	if !ok {
		e.Point(x1, y1)
		return
	}
	d := n.Mul(e.p.Weight / 2)
	col := e.p.StrokeColor
	e.tri(p1.Add(d), p2.Sub(d), p2.Add(d), col)
	e.tri(p1.Add(d), p1.Sub(d), p2.Sub(d), col)
}

// Joint emits the stroke around corner pa of a closed outline, where pb is
// the next vertex and pc the previous one. It covers the band along edge
// pc->pa and the corner wedge up to the edge pa->pb, so emitting a joint
// for every vertex strokes the whole outline.
//
// The outline must wind so that (pb-pa).Perp() points outward; Polygon
// takes care of that. Three triangles are emitted: (m, pa1, pa),
// (m, pa, pc), (m, pc, pc2), where m is the miter point. When the edges are
// parallel, or the miter is longer than MiterLimit, m falls back to the
// bevel point pa2.
func (e Emitter) Joint(pa, pb, pc geom.Vec2) {
	if !e.p.Stroking() {
		return
	}
	w := e.p.Weight
	v1 := pb.Sub(pa).Normalize().Mul(w)
	v3 := pa.Sub(pc).Normalize().Mul(w)
	if v1.IsZero() || v3.IsZero() {
		return
	}

	pa1 := pa.Add(v1.Perp())
	pa2 := pa.Add(v3.Perp())
	pc2 := pc.Add(v3.Perp())

	m, ok := geom.Intersect(pa1, v1, pa2, v3)
	if !ok || m.Distance(pa) > MiterLimit*w {
		m = pa2
	}

	col := e.p.StrokeColor
	e.tri(m, pa1, pa, col)
	e.tri(m, pa, pc, col)
	e.tri(m, pc, pc2, col)
}

// Polygon fills the convex polygon pts as a fan and strokes its outline
// with mitered joints. Coincident neighbours are merged first; an outline
// that collapses to two points strokes as a line, one point as a point.
func (e Emitter) Polygon(pts ...geom.Vec2) {
	pts = distinct(pts)
	switch len(pts) {
	case 0:
		return
	case 1:
		e.Point(pts[0].X, pts[0].Y)
		return
	case 2:
		e.Line(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		return
	}
	if e.p.Fill {
		for i := 1; i+1 < len(pts); i++ {
			e.tri(pts[0], pts[i], pts[i+1], e.p.FillColor)
		}
	}
	if !e.p.Stroking() {
		return
	}

	// Joint offsets along Perp of the travel direction, which points
	// inward for outlines with positive signed area.
	order := pts
	if signedArea(pts) > 0 {
		order = make([]geom.Vec2, len(pts))
		for i, p := range pts {
			order[len(pts)-1-i] = p
		}
	}
	n := len(order)
	for i := range order {
		e.Joint(order[i], order[(i+1)%n], order[(i+n-1)%n])
	}
}

// Triangle emits a filled and stroked triangle.
func (e Emitter) Triangle(a, b, c geom.Vec2) {
	e.Polygon(a, b, c)
}

// Quad emits a filled and stroked quadrilateral. The fill is (a, b, c),
// (a, c, d).
func (e Emitter) Quad(a, b, c, d geom.Vec2) {
	e.Polygon(a, b, c, d)
}

// Rect emits an axis-aligned rectangle with its top-left corner at (x, y).
// Negative sizes extend left or up.
func (e Emitter) Rect(x, y, w, h float64) {
	x, y, w, h = normRect(x, y, w, h)
	e.Quad(geom.V(x, y), geom.V(x+w, y), geom.V(x+w, y+h), geom.V(x, y+h))
}

// distinct drops points equal to their predecessor, including the last
// point when it closes onto the first. pts is returned as is when nothing
// repeats.
func distinct(pts []geom.Vec2) []geom.Vec2 {
	dup := false
	for i, p := range pts {
		if p == pts[(i+1)%len(pts)] {
			dup = true
			break
		}
	}
	if !dup || len(pts) < 2 {
		return pts
	}
	out := make([]geom.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
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

// signedArea returns twice the shoelace area of pts. It is positive for
// outlines that run clockwise on a Y-down screen.
func signedArea(pts []geom.Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.Cross(q)
	}
	if math.IsNaN(a) {
		return 0
	}
	return a
}
