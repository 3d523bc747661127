package geom

// CubicPoint evaluates the cubic Bezier curve a, b, c, d at t.
func CubicPoint(a, b, c, d Vec2, t float64) Vec2 {
	mt := 1 - t
	w0 := mt * mt * mt
	w1 := 3 * mt * mt * t
	w2 := 3 * mt * t * t
	w3 := t * t * t
	return Vec2{
		X: w0*a.X + w1*b.X + w2*c.X + w3*d.X,
		Y: w0*a.Y + w1*b.Y + w2*c.Y + w3*d.Y,
	}
}

// CubicTangent evaluates the first derivative of the cubic Bezier curve at t.
// The result is not normalized and is zero where the curve has a cusp or
// where control points coincide with the endpoints.
func CubicTangent(a, b, c, d Vec2, t float64) Vec2 {
	mt := 1 - t
	w0 := 3 * mt * mt
	w1 := 6 * mt * t
	w2 := 3 * t * t
	return Vec2{
		X: w0*(b.X-a.X) + w1*(c.X-b.X) + w2*(d.X-c.X),
		Y: w0*(b.Y-a.Y) + w1*(c.Y-b.Y) + w2*(d.Y-c.Y),
	}
}

// CubicBound returns the length of the control polygon, an upper bound on
// the arc length of the curve.
func CubicBound(a, b, c, d Vec2) float64 {
	return a.Distance(b) + b.Distance(c) + c.Distance(d)
}
