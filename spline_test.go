package ink

import (
	"math"
	"testing"
)

func TestCatmullRomEndpoints(t *testing.T) {
	seg := CatmullRom{
		P0: Pt(0, 0),
		P1: Pt(10, 5),
		P2: Pt(20, -5),
		P3: Pt(30, 0),
	}
	pointNear(t, seg.Eval(0), seg.P1, 1e-9)
	pointNear(t, seg.Eval(1), seg.P2, 1e-9)
	pointNear(t, seg.Start(), seg.P1, 0)
	pointNear(t, seg.End(), seg.P2, 0)
}

func TestCatmullRomCollinear(t *testing.T) {
	// Equally spaced collinear control points produce a straight segment.
	seg := CatmullRom{
		P0: Pt(0, 0),
		P1: Pt(10, 0),
		P2: Pt(20, 0),
		P3: Pt(30, 0),
	}
	for _, tv := range []float64{0.25, 0.5, 0.75} {
		p := seg.Eval(tv)
		if math.Abs(p.Y) > 1e-9 {
			t.Errorf("Eval(%g).Y = %g, want 0 for collinear points", tv, p.Y)
		}
		want := 10 + 10*tv
		if math.Abs(p.X-want) > 1e-9 {
			t.Errorf("Eval(%g).X = %g, want %g", tv, p.X, want)
		}
	}
}

func TestCatmullRomInterpolatesSmoothly(t *testing.T) {
	// A bend: the curve at the segment midpoint stays between the
	// segment endpoints on x and bows toward the bend on y.
	seg := CatmullRom{
		P0: Pt(0, 0),
		P1: Pt(10, 0),
		P2: Pt(20, 10),
		P3: Pt(30, 10),
	}
	mid := seg.Eval(0.5)
	if mid.X <= 10 || mid.X >= 20 {
		t.Errorf("mid.X = %g, want between the segment endpoints", mid.X)
	}
	if mid.Y <= 0 || mid.Y >= 10 {
		t.Errorf("mid.Y = %g, want between the segment endpoints", mid.Y)
	}
}

func TestSplineSampleInterpolatesPressureAndTime(t *testing.T) {
	seg := CatmullRom{P0: Pt(0, 0), P1: Pt(10, 0), P2: Pt(20, 0), P3: Pt(30, 0)}
	from := Sample{X: 10, Y: 0, Pressure: 0.2, TimeMs: 100}
	to := Sample{X: 20, Y: 0, Pressure: 0.6, TimeMs: 110}

	s := splineSample(seg, from, to, 0.5)
	if math.Abs(s.Pressure-0.4) > 1e-9 {
		t.Errorf("Pressure = %g, want 0.4", s.Pressure)
	}
	if math.Abs(s.TimeMs-105) > 1e-9 {
		t.Errorf("TimeMs = %g, want 105", s.TimeMs)
	}
}
