package tess

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/sketch/batch"
	"github.com/gogpu/sketch/geom"
)

var (
	fillCol   = color.NRGBA{R: 200, A: 255}
	strokeCol = color.NRGBA{B: 200, A: 255}
)

func fillOnly() Paint {
	return Paint{Fill: true, FillColor: fillCol, Quality: 0.5}
}

func strokeOnly(w float64) Paint {
	return Paint{Stroke: true, StrokeColor: strokeCol, Weight: w, Quality: 0.5}
}

func both(w float64) Paint {
	p := fillOnly()
	p.Stroke, p.StrokeColor, p.Weight = true, strokeCol, w
	return p
}

type triangle [3]geom.Vec2

// collect returns the emitted triangles split by color.
func collect(t *testing.T, b *batch.Batch) (fill, stroke []triangle) {
	t.Helper()
	vs := b.Vertices()
	if len(vs)%3 != 0 {
		t.Fatalf("vertex count %d is not a multiple of 3", len(vs))
	}
	for i := 0; i < len(vs); i += 3 {
		var tr triangle
		for j := range 3 {
			v := vs[i+j]
			tr[j] = geom.V(float64(v.X), float64(v.Y))
			if !tr[j].IsFinite() {
				t.Fatalf("non-finite vertex %v", tr[j])
			}
			if v.Color != vs[i].Color {
				t.Fatalf("triangle %d mixes colors", i/3)
			}
		}
		switch vs[i].Color {
		case fillCol:
			fill = append(fill, tr)
		case strokeCol:
			stroke = append(stroke, tr)
		default:
			t.Fatalf("unexpected color %v", vs[i].Color)
		}
	}
	return fill, stroke
}

func (tr triangle) contains(p geom.Vec2) bool {
	d1 := tr[1].Sub(tr[0]).Cross(p.Sub(tr[0]))
	d2 := tr[2].Sub(tr[1]).Cross(p.Sub(tr[1]))
	d3 := tr[0].Sub(tr[2]).Cross(p.Sub(tr[2]))
	const eps = 1e-4
	hasNeg := d1 < -eps || d2 < -eps || d3 < -eps
	hasPos := d1 > eps || d2 > eps || d3 > eps
	return !(hasNeg && hasPos)
}

func covered(tris []triangle, p geom.Vec2) bool {
	for _, tr := range tris {
		if tr.contains(p) {
			return true
		}
	}
	return false
}

func TestArc_FillAndStrokeCounts(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, both(4)).Ellipse(50, 50, 30, 20)
	fill, stroke := collect(t, b)

	sides := geom.ArcSides(2*math.Pi, 30, 20, 4, 0.5)
	if len(fill) != sides {
		t.Errorf("fill triangles = %d, want %d", len(fill), sides)
	}
	if len(stroke) != 2*sides {
		t.Errorf("stroke triangles = %d, want %d", len(stroke), 2*sides)
	}
	for _, tr := range fill {
		if tr[0] != geom.V(50, 50) {
			t.Fatalf("fill triangle %v does not start at the center", tr)
		}
	}
}

func TestArc_DisabledFillEmitsNoFill(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, strokeOnly(2)).Ellipse(0, 0, 10, 10)
	fill, stroke := collect(t, b)
	if len(fill) != 0 || len(stroke) == 0 {
		t.Errorf("fill=%d stroke=%d", len(fill), len(stroke))
	}

	b.Clear()
	New(b, fillOnly()).Ellipse(0, 0, 10, 10)
	fill, stroke = collect(t, b)
	if len(fill) == 0 || len(stroke) != 0 {
		t.Errorf("fill=%d stroke=%d", len(fill), len(stroke))
	}
}

func TestArc_ZeroRadiusIsPoint(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, fillOnly()).Arc(5, 5, 0, 0, 0, math.Pi, false)
	if !b.Empty() {
		t.Errorf("zero radius without stroke emitted %d vertices", b.Len())
	}

	New(b, both(6)).Arc(5, 5, 0, 0, 0, math.Pi, false)
	fill, stroke := collect(t, b)
	if len(fill) != 0 || len(stroke) < 3 {
		t.Fatalf("point: fill=%d stroke=%d", len(fill), len(stroke))
	}
	for _, tr := range stroke {
		for _, p := range tr {
			if p.Distance(geom.V(5, 5)) > 3+1e-5 {
				t.Errorf("point vertex %v outside radius 3", p)
			}
		}
	}
}

func TestArc_Chord(t *testing.T) {
	const r = 40.0
	tests := []struct {
		name  string
		sweep float64
		extra int
	}{
		{"major", 1.5 * math.Pi, 1},
		{"minor", math.Pi / 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sides := geom.ArcSides(tt.sweep, r, r, 0, 0.5)
			b := batch.NewBatch(0)
			New(b, fillOnly()).Arc(0, 0, r, r, 0, tt.sweep, true)
			fill, _ := collect(t, b)
			if len(fill) != sides+tt.extra {
				t.Errorf("chord fill = %d, want %d", len(fill), sides+tt.extra)
			}

			b.Clear()
			New(b, fillOnly()).Arc(0, 0, r, r, 0, tt.sweep, false)
			fill, _ = collect(t, b)
			if len(fill) != sides {
				t.Errorf("pie fill = %d, want %d", len(fill), sides)
			}
		})
	}

	// The center of a minor chord lies outside the filled segment.
	b := batch.NewBatch(0)
	New(b, fillOnly()).Arc(0, 0, r, r, 0, math.Pi/2, true)
	fill, _ := collect(t, b)
	if covered(fill, geom.V(1, 1)) {
		t.Error("minor chord fill covers the center region")
	}
	if !covered(fill, geom.V(r*0.6, r*0.6)) {
		t.Error("minor chord fill misses the segment")
	}
}

func TestLine(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, strokeOnly(4)).Line(0, 0, 10, 0)
	_, stroke := collect(t, b)
	if len(stroke) != 2 {
		t.Fatalf("line triangles = %d, want 2", len(stroke))
	}
	for _, p := range []geom.Vec2{{X: 5, Y: 1.9}, {X: 5, Y: -1.9}, {X: 0.1, Y: 0}, {X: 9.9, Y: 0}} {
		if !covered(stroke, p) {
			t.Errorf("line misses %v", p)
		}
	}
	if covered(stroke, geom.V(5, 2.5)) {
		t.Error("line is thicker than its weight")
	}
}

func TestLine_Degenerate(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, strokeOnly(2)).Line(3, 3, 3, 3)
	_, stroke := collect(t, b)
	if len(stroke) == 0 {
		t.Error("zero-length line should draw a point")
	}

	b.Clear()
	New(b, fillOnly()).Line(0, 0, 5, 5)
	if !b.Empty() {
		t.Error("line without stroke emitted geometry")
	}
	New(b, strokeOnly(0)).Line(0, 0, 5, 5)
	if !b.Empty() {
		t.Error("zero-weight line emitted geometry")
	}
}

func TestTriangle_StrokeJoints(t *testing.T) {
	const w = 3.0
	a, bb, c := geom.V(0, 0), geom.V(60, 0), geom.V(30, 52)

	for _, order := range [][3]geom.Vec2{{a, bb, c}, {a, c, bb}} {
		b := batch.NewBatch(0)
		New(b, both(w)).Triangle(order[0], order[1], order[2])
		fill, stroke := collect(t, b)
		if len(fill) != 1 {
			t.Errorf("fill triangles = %d, want 1", len(fill))
		}
		if len(stroke) != 9 {
			t.Fatalf("stroke triangles = %d, want 3 joints x 3", len(stroke))
		}

		// Points just outside each edge are covered; points inside are not.
		centroid := a.Add(bb).Add(c).Mul(1.0 / 3)
		edges := [][2]geom.Vec2{{a, bb}, {bb, c}, {c, a}}
		for _, e := range edges {
			for _, s := range []float64{0.1, 0.5, 0.9} {
				p := e[0].Lerp(e[1], s)
				out := p.Sub(centroid).Normalize()
				n, _ := geom.SegmentNormal(e[0], e[1])
				if n.Dot(out) < 0 {
					n = n.Neg()
				}
				if !covered(stroke, p.Add(n.Mul(w/2))) {
					t.Errorf("stroke misses %v outside edge %v", p.Add(n.Mul(w/2)), e)
				}
				if covered(stroke, p.Sub(n.Mul(w/2))) {
					t.Errorf("stroke covers %v inside edge %v", p.Sub(n.Mul(w/2)), e)
				}
			}
		}
	}
}

func TestJoint_ParallelFallsBackToBevel(t *testing.T) {
	tests := []struct {
		name       string
		pa, pb, pc geom.Vec2
	}{
		{"collinear", geom.V(10, 0), geom.V(20, 0), geom.V(0, 0)},
		{"reversal", geom.V(10, 0), geom.V(0, 0), geom.V(0, 0.0000000001)},
		{"hairpin", geom.V(10, 0), geom.V(0, 1e-12), geom.V(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := batch.NewBatch(0)
			New(b, strokeOnly(2)).Joint(tt.pa, tt.pb, tt.pc)
			_, stroke := collect(t, b)
			if len(stroke) != 3 {
				t.Fatalf("joint triangles = %d, want 3", len(stroke))
			}
			for _, tr := range stroke {
				for _, p := range tr {
					if p.Distance(tt.pa) > 10+2*MiterLimit {
						t.Errorf("joint vertex %v is far from the corner", p)
					}
				}
			}
		})
	}
}

func TestJoint_ReversalCoversIncomingEdge(t *testing.T) {
	// pc -> pa runs along +x and pa -> pb turns straight back.
	b := batch.NewBatch(0)
	New(b, strokeOnly(2)).Joint(geom.V(10, 0), geom.V(0, 0), geom.V(0, 0))
	_, stroke := collect(t, b)
	for _, x := range []float64{1, 5, 9} {
		if !covered(stroke, geom.V(x, 1)) {
			t.Errorf("band of the incoming edge misses (%v, 1)", x)
		}
		if covered(stroke, geom.V(x, -1)) {
			t.Errorf("reversal joint covers (%v, -1) on the wrong side", x)
		}
	}
}

func TestJoint_DegenerateEdgeSkipped(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, strokeOnly(2)).Joint(geom.V(1, 1), geom.V(1, 1), geom.V(0, 0))
	if !b.Empty() {
		t.Error("joint with zero-length edge emitted geometry")
	}
}

func TestQuad_CoincidentVertices(t *testing.T) {
	const w = 3.0
	a, bb, c := geom.V(0, 0), geom.V(60, 0), geom.V(30, 52)
	centroid := a.Add(bb).Add(c).Mul(1.0 / 3)
	edges := [][2]geom.Vec2{{a, bb}, {bb, c}, {c, a}}

	tests := []struct {
		name string
		quad [4]geom.Vec2
	}{
		{"closing", [4]geom.Vec2{a, bb, c, a}},
		{"trailing", [4]geom.Vec2{a, bb, c, c}},
		{"leading", [4]geom.Vec2{a, a, bb, c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := batch.NewBatch(0)
			q := tt.quad
			New(b, strokeOnly(w)).Quad(q[0], q[1], q[2], q[3])
			_, stroke := collect(t, b)
			if len(stroke) != 9 {
				t.Errorf("stroke triangles = %d, want 3 joints x 3", len(stroke))
			}
			for _, e := range edges {
				p := e[0].Lerp(e[1], 0.5)
				n, _ := geom.SegmentNormal(e[0], e[1])
				if n.Dot(p.Sub(centroid)) < 0 {
					n = n.Neg()
				}
				if out := p.Add(n.Mul(w / 2)); !covered(stroke, out) {
					t.Errorf("edge %v has no stroke at %v", e, out)
				}
			}
		})
	}
}

func TestQuad_CollapsedOutline(t *testing.T) {
	p, q := geom.V(5, 5), geom.V(25, 5)

	b := batch.NewBatch(0)
	New(b, both(2)).Quad(p, p, q, q)
	fill, stroke := collect(t, b)
	if len(fill) != 0 || len(stroke) != 2 {
		t.Errorf("two-point quad: fill %d, stroke %d, want 0 and a 2 triangle line", len(fill), len(stroke))
	}

	b = batch.NewBatch(0)
	New(b, both(2)).Quad(p, p, p, p)
	fill, stroke = collect(t, b)
	if len(fill) != 0 || len(stroke) == 0 {
		t.Errorf("one-point quad: fill %d, stroke %d, want a point", len(fill), len(stroke))
	}
}

func TestRoundedRect_ZeroRadiiMatchesRect(t *testing.T) {
	r := batch.NewBatch(0)
	New(r, fillOnly()).Rect(10, 20, 30, 40)
	rr := batch.NewBatch(0)
	New(rr, fillOnly()).RoundedRect(10, 20, 30, 40, 0, 0, 0, 0)

	want, got := r.Vertices(), rr.Vertices()
	if len(want) != 6 || len(got) != len(want) {
		t.Fatalf("rect=%d rounded=%d vertices, want 6 each", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("vertex %d: rect %+v, rounded %+v", i, want[i], got[i])
		}
	}
}

func TestRoundedRect_Coverage(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, both(2)).RoundedRect(0, 0, 100, 60, 10, 20, 30, 0)
	fill, stroke := collect(t, b)
	if len(fill) == 0 || len(stroke) == 0 {
		t.Fatal("expected fill and stroke")
	}

	inside := []geom.Vec2{{X: 50, Y: 30}, {X: 5, Y: 30}, {X: 50, Y: 2}, {X: 95, Y: 35}, {X: 1, Y: 59}, {X: 10, Y: 10}}
	for _, p := range inside {
		if !covered(fill, p) {
			t.Errorf("fill misses %v", p)
		}
	}
	// Cut corners are empty.
	for _, p := range []geom.Vec2{{X: 0.5, Y: 0.5}, {X: 99.5, Y: 0.5}, {X: 99.5, Y: 59.5}} {
		if covered(fill, p) {
			t.Errorf("fill covers rounded-off corner %v", p)
		}
	}
	if !covered(stroke, geom.V(50, -1)) || !covered(stroke, geom.V(101, 25)) {
		t.Error("stroke misses the straight edges")
	}
}

func TestRoundedRect_ClampsRadii(t *testing.T) {
	b := batch.NewBatch(0)
	New(b, both(1)).RoundedRect(0, 0, 20, 10, 100, 100, 100, 100)
	fill, _ := collect(t, b)
	for _, tr := range fill {
		for _, p := range tr {
			if p.X < -1e-6 || p.X > 20+1e-6 || p.Y < -1e-6 || p.Y > 10+1e-6 {
				t.Fatalf("fill vertex %v outside the rectangle", p)
			}
		}
	}
}

func TestBezier_Straight(t *testing.T) {
	const w = 2.0
	b := batch.NewBatch(0)
	a, d := geom.V(0, 0), geom.V(90, 0)
	New(b, strokeOnly(w)).Bezier(a, geom.V(30, 0), geom.V(60, 0), d)
	_, stroke := collect(t, b)

	want := 2 * BezierSteps(90, 0.5)
	if len(stroke) != want {
		t.Errorf("triangles = %d, want %d", len(stroke), want)
	}
	for _, tr := range stroke {
		for _, p := range tr {
			if math.Abs(p.Y) > w/2+1e-4 || p.X < -1e-4 || p.X > 90+1e-4 {
				t.Fatalf("vertex %v strays from the line", p)
			}
		}
	}
	if !covered(stroke, geom.V(89.9, 0)) {
		t.Error("curve end is not covered")
	}
}

func TestBezier_CurveEndpoints(t *testing.T) {
	b := batch.NewBatch(0)
	a, d := geom.V(0, 0), geom.V(100, 0)
	New(b, strokeOnly(4)).Bezier(a, geom.V(0, 80), geom.V(100, 80), d)
	_, stroke := collect(t, b)
	mid := geom.CubicPoint(a, geom.V(0, 80), geom.V(100, 80), d, 0.5)
	for _, p := range []geom.Vec2{geom.V(0, 0.5), geom.V(100, 0.5), mid} {
		if !covered(stroke, p) {
			t.Errorf("curve stroke misses %v", p)
		}
	}
}

func TestBezier_Degenerate(t *testing.T) {
	p := geom.V(7, 7)
	b := batch.NewBatch(0)
	New(b, strokeOnly(2)).Bezier(p, p, p, p)
	_, stroke := collect(t, b)
	if len(stroke) == 0 {
		t.Fatal("degenerate curve emitted nothing")
	}
	if !covered(stroke, p) {
		t.Error("degenerate curve does not cover its point")
	}

	// Coincident control points at the ends give zero end tangents.
	b.Clear()
	New(b, strokeOnly(2)).Bezier(geom.V(0, 0), geom.V(0, 0), geom.V(10, 10), geom.V(10, 10))
	if _, stroke := collect(t, b); len(stroke) == 0 {
		t.Error("curve with zero end tangents emitted nothing")
	}
}

func TestBezierSteps(t *testing.T) {
	if got := BezierSteps(0, 0.5); got != 2 {
		t.Errorf("BezierSteps(0) = %d, want 2", got)
	}
	if BezierSteps(1000, 0.1) <= BezierSteps(1000, 0.9) {
		t.Error("finer quality should use more steps")
	}
	if got := BezierSteps(math.Inf(1), 0.5); got != MaxBezierSteps {
		t.Errorf("unbounded curve: %d steps", got)
	}
}

func TestTexQuad(t *testing.T) {
	b := batch.NewBatch(0)
	tint := color.NRGBA{R: 255, G: 255, B: 255, A: 128}
	TexQuad(b, 10, 10, 20, 30, SubUV(16, 0, 16, 32, 64, 32), tint)
	vs := b.Vertices()
	if len(vs) != 6 {
		t.Fatalf("vertices = %d, want 6", len(vs))
	}
	if vs[0].U != 0.25 || vs[0].V != 0 || vs[2].U != 0.5 || vs[2].V != 1 {
		t.Errorf("uv = (%v,%v)-(%v,%v)", vs[0].U, vs[0].V, vs[2].U, vs[2].V)
	}
	if vs[2].X != 30 || vs[2].Y != 40 || vs[5].Color != tint {
		t.Errorf("vertex 2 = %+v", vs[2])
	}
}

func TestSubUV_Clamps(t *testing.T) {
	got := SubUV(-10, -10, 200, 200, 100, 50)
	if got != FullUV {
		t.Errorf("SubUV = %+v, want full", got)
	}
	if SubUV(0, 0, 1, 1, 0, 0) != FullUV {
		t.Error("empty texture should map to full UV")
	}
}
