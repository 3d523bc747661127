package tess

import (
	"math"

	"github.com/gogpu/sketch/geom"
)

// MaxBezierSteps bounds the subdivision of a single curve.
const MaxBezierSteps = 4096

// BezierSteps returns the number of segments used to flatten a curve whose
// control polygon has length bound.
func BezierSteps(bound, quality float64) int {
	if quality <= 0 {
		quality = DefaultQuality
	}
	n := math.Ceil(bound/(quality*4)) + 2
	switch {
	case math.IsNaN(n) || n < 2:
		return 2
	case n > MaxBezierSteps:
		return MaxBezierSteps
	}
	return int(n)
}

// Bezier strokes the cubic curve a, b, c, d. Consecutive samples are joined
// by quads whose ends are perpendicular to the local tangent, so the
// stroke bends smoothly instead of showing facets. The end point t=1 is
// always sampled. A curve whose points all coincide draws a point.
func (e Emitter) Bezier(a, b, c, d geom.Vec2) {
	if !e.p.Stroking() {
		return
	}
	bound := geom.CubicBound(a, b, c, d)
	if bound == 0 {
		e.Point(a.X, a.Y)
		return
	}

	n := BezierSteps(bound, e.p.Quality)
	chord := d.Sub(a).Normalize()
	half := e.p.Weight / 2

	var prevTan geom.Vec2
	tangent := func(t float64) geom.Vec2 {
		tan := geom.CubicTangent(a, b, c, d, t).Normalize()
		if tan.IsZero() {
			tan = chord
		}
		if tan.IsZero() {
			tan = prevTan
		}
		return tan
	}

	p0 := a
	t0 := tangent(0)
	prevTan = t0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		var p1 geom.Vec2
		if i == n {
			p1 = d
		} else {
			p1 = geom.CubicPoint(a, b, c, d, t)
		}
		t1 := tangent(t)
		if t1.IsZero() {
			t1 = p1.Sub(p0).Normalize()
		}

		if !t0.IsZero() && !t1.IsZero() && p0 != p1 {
			e.slanted(p0, t0.Perp().Mul(half), p1, t1.Perp().Mul(half))
		}
		p0, t0 = p1, t1
		if !t1.IsZero() {
			prevTan = t1
		}
	}
}

// slanted emits the quad between p0 +/- n0 and p1 +/- n1.
func (e Emitter) slanted(p0, n0, p1, n1 geom.Vec2) {
	col := e.p.StrokeColor
	e.tri(p0.Add(n0), p1.Add(n1), p1.Sub(n1), col)
	e.tri(p0.Add(n0), p1.Sub(n1), p0.Sub(n0), col)
}
