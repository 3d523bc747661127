// Package tess turns shapes into triangle lists.
//
// An Emitter pairs an output Sink with a Paint snapshot taken when the
// shape call was made. All output is plain triangles (three vertices each)
// in pixel space. Degenerate input never produces NaN or infinite
// vertices: zero radii collapse to points, zero-length segments to dots
// and parallel joins to bevels.
package tess

import (
	"image/color"

	"github.com/gogpu/sketch/batch"
	"github.com/gogpu/sketch/geom"
)

// Sink receives emitted vertices. *batch.Batch and *batch.Registry both
// implement it.
type Sink interface {
	Append(vs ...batch.Vertex)
}

// Paint is an immutable snapshot of the style used to emit one shape.
type Paint struct {
	Fill        bool
	FillColor   color.NRGBA
	Stroke      bool
	StrokeColor color.NRGBA
	// Weight is the stroke thickness in pixels.
	Weight float64
	// Quality is the maximum chord error in pixels. Lower is smoother.
	Quality float64
}

// Stroking reports whether the paint produces stroke geometry.
func (p Paint) Stroking() bool { return p.Stroke && p.Weight > 0 }

// Emitter emits shape geometry into a Sink.
type Emitter struct {
	out Sink
	p   Paint
}

// New returns an Emitter writing to out with paint p.
func New(out Sink, p Paint) Emitter {
	if p.Quality <= 0 {
		p.Quality = DefaultQuality
	}
	return Emitter{out: out, p: p}
}

// DefaultQuality is the chord error used when a Paint carries none.
const DefaultQuality = 0.5

// Paint returns the emitter's paint.
func (e Emitter) Paint() Paint { return e.p }

func (e Emitter) tri(a, b, c geom.Vec2, col color.NRGBA) {
	e.out.Append(
		batch.Pos(a.X, a.Y, col),
		batch.Pos(b.X, b.Y, col),
		batch.Pos(c.X, c.Y, col),
	)
}

// quad emits a, b, c, d as (a, b, c), (a, c, d).
func (e Emitter) quad(a, b, c, d geom.Vec2, col color.NRGBA) {
	e.tri(a, b, c, col)
	e.tri(a, c, d, col)
}
