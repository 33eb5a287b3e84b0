package ink

// CatmullRom represents one segment of a uniform Catmull-Rom spline with
// control points P0..P3. The curve interpolates from P1 to P2;
// P0 and P3 only shape the tangents. Duplicate an endpoint to evaluate the
// first or last segment of an open polyline.
type CatmullRom struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the segment at parameter t in [0, 1].
// t=0 returns P1, t=1 returns P2.
func (c CatmullRom) Eval(t float64) Point {
	t2 := t * t
	t3 := t2 * t

	x := 0.5 * ((2 * c.P1.X) +
		(-c.P0.X+c.P2.X)*t +
		(2*c.P0.X-5*c.P1.X+4*c.P2.X-c.P3.X)*t2 +
		(-c.P0.X+3*c.P1.X-3*c.P2.X+c.P3.X)*t3)
	y := 0.5 * ((2 * c.P1.Y) +
		(-c.P0.Y+c.P2.Y)*t +
		(2*c.P0.Y-5*c.P1.Y+4*c.P2.Y-c.P3.Y)*t2 +
		(-c.P0.Y+3*c.P1.Y-3*c.P2.Y+c.P3.Y)*t3)

	return Point{X: x, Y: y}
}

// Start returns the first interpolated point of the segment.
func (c CatmullRom) Start() Point {
	return c.P1
}

// End returns the last interpolated point of the segment.
func (c CatmullRom) End() Point {
	return c.P2
}

// splineSample evaluates the segment at t and builds a full Sample by
// linearly interpolating pressure and time between the two samples the
// segment spans.
func splineSample(seg CatmullRom, from, to Sample, t float64) Sample {
	p := seg.Eval(t)
	return Sample{
		X:        p.X,
		Y:        p.Y,
		Pressure: from.Pressure + (to.Pressure-from.Pressure)*t,
		TimeMs:   from.TimeMs + (to.TimeMs-from.TimeMs)*t,
	}
}
