package geom

import "math"

// ParallelEpsilon is the relative determinant below which two directions
// are treated as parallel by Intersect.
const ParallelEpsilon = 1e-9

// Intersect returns the intersection of the line through p1 with direction
// d1 and the line through p2 with direction d2.
//
// The second result is false when the directions are parallel (or one of
// them is zero) within ParallelEpsilon; the returned point is then p2 so
// callers that ignore the flag still get a finite vertex.
func Intersect(p1, d1, p2, d2 Vec2) (Vec2, bool) {
	det := d1.Cross(d2)
	scale := d1.Length() * d2.Length()
	if scale == 0 || math.Abs(det) <= ParallelEpsilon*scale {
		return p2, false
	}
	t := p2.Sub(p1).Cross(d2) / det
	return p1.Add(d1.Mul(t)), true
}

// SegmentNormal returns the unit perpendicular of the segment a->b, that is
// (b-a).Perp() normalized. The second result is false for a zero-length
// segment.
func SegmentNormal(a, b Vec2) (Vec2, bool) {
	d := b.Sub(a)
	if d.IsZero() {
		return Vec2{}, false
	}
	return Vec2{X: a.Y - b.Y, Y: b.X - a.X}.Normalize(), true
}
