package geom

import "math"

// MaxArcSides bounds the subdivision of a single arc.
const MaxArcSides = 4096

// ArcSides returns the number of straight sides used to approximate an
// elliptical arc so that the chord error stays below quality pixels.
//
// The count is max(3, ceil(|sweep| / acos(2c²-1))) with
// c = 1 - quality / max(rx+ext, ry+ext), where ext is the extra radius
// added by a stroke. Radii smaller than quality clamp c to 0, so the
// result never grows again once the arc is smaller than the tolerance.
func ArcSides(sweep, rx, ry, ext, quality float64) int {
	r := math.Max(rx+ext, ry+ext)
	sweep = math.Abs(sweep)
	if r <= 0 || sweep == 0 || math.IsNaN(r) || math.IsNaN(sweep) {
		return 3
	}

	c := 1 - quality/r
	c = math.Max(0, math.Min(1, c))
	step := math.Acos(2*c*c - 1)
	if step <= 0 || math.IsNaN(step) {
		return MaxArcSides
	}

	sides := math.Ceil(sweep / step)
	switch {
	case sides < 3:
		return 3
	case sides > MaxArcSides:
		return MaxArcSides
	}
	return int(sides)
}
