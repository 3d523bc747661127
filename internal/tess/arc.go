package tess

import (
	"math"

	"github.com/gogpu/sketch/geom"
)

// Arc emits an elliptical arc centered at (cx, cy).
//
// Angles are in radians, measured clockwise on screen from +X. The fill is
// a pie (fan from the center) unless chord is set. The stroke is a band of
// Weight pixels outside the arc. Zero radii draw a point.
func (e Emitter) Arc(cx, cy, rx, ry, start, sweep float64, chord bool) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 && ry == 0 {
		e.Point(cx, cy)
		return
	}
	e.arc(geom.V(cx, cy), rx, ry, start, sweep, e.p.Fill, chord)
}

// Ellipse emits a full ellipse.
func (e Emitter) Ellipse(cx, cy, rx, ry float64) {
	e.Arc(cx, cy, rx, ry, 0, 2*math.Pi, false)
}

// Point emits a dot of diameter Weight in the stroke color. Nothing is
// emitted when stroking is off.
func (e Emitter) Point(x, y float64) {
	if !e.p.Stroking() {
		return
	}
	r := e.p.Weight / 2
	c := geom.V(x, y)
	n := geom.ArcSides(2*math.Pi, r, r, 0, e.p.Quality)
	step := 2 * math.Pi / float64(n)
	prev := c.Add(geom.V(r, 0))
	for i := 1; i <= n; i++ {
		next := c.Add(geom.FromAngle(float64(i) * step).Mul(r))
		e.tri(c, prev, next, e.p.StrokeColor)
		prev = next
	}
}

// arc emits the fill fan and stroke band. Radii may be zero, in which case
// only the stroke band (a sector of radius Weight) is produced.
func (e Emitter) arc(c geom.Vec2, rx, ry, start, sweep float64, fill, chord bool) {
	stroke := e.p.Stroking()
	fill = fill && rx > 0 && ry > 0
	if !fill && !stroke || sweep == 0 {
		return
	}

	ext := 0.0
	if stroke {
		ext = e.p.Weight
	}
	n := geom.ArcSides(sweep, rx, ry, ext, e.p.Quality)
	step := sweep / float64(n)
	w := e.p.Weight

	at := func(angle, ex float64) geom.Vec2 {
		return geom.V(c.X+math.Cos(angle)*(rx+ex), c.Y+math.Sin(angle)*(ry+ex))
	}

	// Chords up to a half turn are filled as a fan from the start point;
	// larger ones as the pie plus a closing triangle.
	fanFromStart := chord && math.Abs(sweep) <= math.Pi
	first := at(start, 0)

	a := first
	for i := 1; i <= n; i++ {
		angle := start + float64(i)*step
		b := at(angle, 0)
		if fill {
			if fanFromStart {
				if i > 1 {
					e.tri(first, a, b, e.p.FillColor)
				}
			} else {
				e.tri(c, a, b, e.p.FillColor)
			}
		}
		if stroke {
			oa := at(angle-step, w)
			ob := at(angle, w)
			e.tri(a, oa, ob, e.p.StrokeColor)
			e.tri(a, ob, b, e.p.StrokeColor)
		}
		a = b
	}

	if fill && chord && math.Abs(sweep) > math.Pi {
		e.tri(c, first, a, e.p.FillColor)
	}
}
