package ink

import (
	"testing"
	"time"
)

func realClock() func() time.Time {
	return time.Now
}

// stepClock returns a clock that advances by step on every read.
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func samplesAt(pts ...Point) []Sample {
	out := make([]Sample, len(pts))
	for i, p := range pts {
		out[i] = Sample{X: p.X, Y: p.Y, Pressure: 0.5, TimeMs: float64(i) * 10}
	}
	return out
}

func TestSmoothingDisabledIsIdentity(t *testing.T) {
	history := samplesAt(Pt(0, 0), Pt(10, 0))
	cur := Sample{X: 20, Y: 7, Pressure: 0.5, TimeMs: 20}

	tests := []struct {
		name string
		cfg  SmoothingConfig
	}{
		{"disabled", SmoothingConfig{Enabled: false, Strength: 0.5, MinPoints: 2}},
		{"zero strength", SmoothingConfig{Enabled: true, Strength: 0, MinPoints: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := smoothCoordinates(cur, history, tt.cfg, realClock())
			if len(out) != 1 || out[0] != cur {
				t.Errorf("output = %+v, want the input unchanged", out)
			}
		})
	}
}

func TestSmoothingMinPointsGate(t *testing.T) {
	cfg := DefaultSmoothingConfig()
	cfg.MinPoints = 3

	cur := Sample{X: 20, Y: 7}
	out := smoothCoordinates(cur, samplesAt(Pt(0, 0)), cfg, realClock())
	if len(out) != 1 || out[0] != cur {
		t.Errorf("below MinPoints, output = %+v, want pass-through", out)
	}
}

func TestSmoothingLinearBlend(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled:             true,
		Strength:            0.5,
		Method:              MethodLinear,
		MinPoints:           2,
		MaxProcessingTimeMs: 1000,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0))
	cur := Sample{X: 20, Y: 5, Pressure: 0.5, TimeMs: 20}

	out := smoothCoordinates(cur, history, cfg, realClock())
	if len(out) != 1 {
		t.Fatalf("output length = %d, want 1", len(out))
	}
	// Midpoint of the two predecessors is (5, 0); half strength pulls
	// halfway there.
	pointNear(t, out[0].Point(), Pt(12.5, 2.5), 1e-9)
	if out[0].Pressure != cur.Pressure || out[0].TimeMs != cur.TimeMs {
		t.Error("linear blend must only move the position")
	}
}

func TestSmoothingLinearEndpointUntouched(t *testing.T) {
	cfg := SmoothingConfig{Enabled: true, Strength: 0.9, Method: MethodLinear, MinPoints: 2, MaxProcessingTimeMs: 1000}
	cur := Sample{X: 20, Y: 5}
	out := smoothCoordinates(cur, samplesAt(Pt(0, 0)), cfg, realClock())
	if out[0] != cur {
		t.Errorf("stroke endpoint moved: %+v", out[0])
	}
}

func TestSmoothingRealtimeSpline(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled:             true,
		Strength:            0.3,
		Method:              MethodCatmullRom,
		RealtimeMode:        true,
		MinPoints:           2,
		MaxProcessingTimeMs: 1000,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	cur := Sample{X: 30, Y: 0, Pressure: 0.5, TimeMs: 30}

	out := smoothCoordinates(cur, history, cfg, realClock())
	if len(out) != 2 {
		t.Fatalf("output length = %d, want one interpolated point plus the current", len(out))
	}
	// Collinear points: the inserted midpoint lies on the line.
	pointNear(t, out[0].Point(), Pt(25, 0), 1e-9)
	if out[1] != cur {
		t.Errorf("final output = %+v, want the current sample", out[1])
	}
	if out[0].TimeMs <= history[2].TimeMs || out[0].TimeMs >= cur.TimeMs {
		t.Errorf("interpolated TimeMs = %g, want between %g and %g",
			out[0].TimeMs, history[2].TimeMs, cur.TimeMs)
	}
}

func TestSmoothingRealtimeSplineHighStrength(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled: true, Strength: 0.7, Method: MethodCatmullRom,
		RealtimeMode: true, MinPoints: 2, MaxProcessingTimeMs: 1000,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	cur := Sample{X: 30, Y: 0, TimeMs: 30}

	out := smoothCoordinates(cur, history, cfg, realClock())
	if len(out) != 3 {
		t.Fatalf("output length = %d, want two interpolated points plus the current", len(out))
	}
}

func TestSmoothingQualitySplineDensity(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled: true, Strength: 1.0, Method: MethodCatmullRom,
		RealtimeMode: false, MinPoints: 2, MaxProcessingTimeMs: 1000,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	cur := Sample{X: 30, Y: 0, TimeMs: 30}

	out := smoothCoordinates(cur, history, cfg, realClock())
	// Resolution 2 + 1.0*6 = 8: seven interior points plus the current.
	if len(out) != 8 {
		t.Fatalf("output length = %d, want 8", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].TimeMs <= out[i-1].TimeMs {
			t.Errorf("TimeMs not increasing at %d: %g then %g", i, out[i-1].TimeMs, out[i].TimeMs)
		}
	}
}

func TestSmoothingSplineFallsBackBelowFourPoints(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled: true, Strength: 0.5, Method: MethodCatmullRom,
		RealtimeMode: true, MinPoints: 2, MaxProcessingTimeMs: 1000,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0))
	cur := Sample{X: 20, Y: 5}

	out := smoothCoordinates(cur, history, cfg, realClock())
	if len(out) != 1 {
		t.Fatalf("output length = %d, want 1 from the linear fallback", len(out))
	}
	pointNear(t, out[0].Point(), Pt(12.5, 2.5), 1e-9)
}

func TestSmoothingBudgetDegrades(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled: true, Strength: 0.5, Method: MethodCatmullRom,
		RealtimeMode: true, MinPoints: 2,
		MaxProcessingTimeMs: 1.0,
	}
	history := samplesAt(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	cur := Sample{X: 30, Y: 0, TimeMs: 30}

	// Every clock read advances 5ms, so the budget is always blown.
	out := smoothCoordinates(cur, history, cfg, stepClock(5*time.Millisecond))
	if len(out) != 1 {
		t.Fatalf("output length = %d, want the single degraded blend", len(out))
	}
	// Equal-weight blend of (10,0), (20,0) and (30,0).
	pointNear(t, out[0].Point(), Pt(20, 0), 1e-9)
}

func TestSmoothingAdaptiveSelectsBySpeed(t *testing.T) {
	cfg := SmoothingConfig{
		Enabled: true, Strength: 0.5, Adaptive: true,
		RealtimeMode: true, MinPoints: 2, MaxProcessingTimeMs: 1000,
	}

	// Slow, deliberate stroke: 1 unit per 10ms, well under the
	// threshold, so the spline runs and inserts points.
	slow := samplesAt(Pt(0, 0), Pt(1, 0), Pt(2, 0))
	out := smoothCoordinates(Sample{X: 3, TimeMs: 30}, slow, cfg, realClock())
	if len(out) < 2 {
		t.Errorf("slow stroke emitted %d samples, want spline interpolation", len(out))
	}

	// Fast stroke: 100 units per 10ms, over the threshold, so the cheap
	// linear blend runs.
	fast := []Sample{
		{X: 0, TimeMs: 0},
		{X: 100, TimeMs: 10},
		{X: 200, TimeMs: 20},
	}
	out = smoothCoordinates(Sample{X: 300, TimeMs: 30}, fast, cfg, realClock())
	if len(out) != 1 {
		t.Errorf("fast stroke emitted %d samples, want the single linear blend", len(out))
	}
}
