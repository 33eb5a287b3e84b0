package ink

import "time"

// SmoothingMethod selects the coordinate smoothing algorithm.
type SmoothingMethod string

const (
	// MethodLinear pulls each new point toward the midpoint of its
	// predecessors. Cheap and low-latency.
	MethodLinear SmoothingMethod = "linear"

	// MethodCatmullRom interpolates new points along a Catmull-Rom
	// spline through the recent history. Smoother, costs more.
	MethodCatmullRom SmoothingMethod = "catmull_rom"
)

// adaptiveSpeedThreshold is the drawing speed, in canvas units per
// millisecond, above which adaptive smoothing prefers the linear method.
// Fast strokes favor low latency; slow, deliberate strokes favor spline
// quality.
const adaptiveSpeedThreshold = 1.5

// SmoothingConfig tunes the coordinate smoothing stage.
type SmoothingConfig struct {
	Enabled bool `toml:"enabled"`

	// Strength scales how far points are pulled toward the smoothed
	// curve, in [0, 1]. Zero disables smoothing outright.
	Strength float64 `toml:"strength"`

	Method SmoothingMethod `toml:"method"`

	// RealtimeMode selects the lightweight spline variant, inserting at
	// most two points per segment. Both spline variants interpolate only
	// the newest segment; the quality variant differs in density, not in
	// how much history it reworks.
	RealtimeMode bool `toml:"realtime_mode"`

	// Adaptive switches between methods based on estimated drawing
	// speed, overriding Method.
	Adaptive bool `toml:"adaptive"`

	// MinPoints gates smoothing: below this many points (history plus
	// the current sample) the input passes through unchanged.
	MinPoints int `toml:"min_points"`

	// MaxProcessingTimeMs is the self-policed wall-clock budget. When
	// smoothing exceeds it, the result is discarded in favor of a cheap
	// neighbor blend; the stage degrades, it never fails.
	MaxProcessingTimeMs float64 `toml:"max_processing_time_ms"`
}

// DefaultSmoothingConfig returns the reference smoothing settings.
func DefaultSmoothingConfig() SmoothingConfig {
	return SmoothingConfig{
		Enabled:             true,
		Strength:            0.3,
		Method:              MethodLinear,
		RealtimeMode:        true,
		MinPoints:           2,
		MaxProcessingTimeMs: 1.0,
	}
}

// smoothCoordinates runs the coordinate smoothing stage on one sample
// against the stroke history. It returns the samples to emit in order;
// spline modes may insert interpolated samples ahead of the current one.
// With smoothing disabled or zero strength it is the identity function.
func smoothCoordinates(cur Sample, history []Sample, cfg SmoothingConfig, clock func() time.Time) []Sample {
	if !cfg.Enabled || cfg.Strength <= 0 {
		return []Sample{cur}
	}
	if len(history)+1 < cfg.MinPoints {
		return []Sample{cur}
	}

	start := clock()

	method := cfg.Method
	if cfg.Adaptive {
		method = adaptiveMethod(cur, history)
	}
	if method == MethodCatmullRom && len(history) < 3 {
		// Not enough points to shape spline tangents yet.
		method = MethodLinear
	}

	var out []Sample
	switch method {
	case MethodCatmullRom:
		if cfg.RealtimeMode {
			out = splineRealtime(cur, history, cfg.Strength)
		} else {
			out = splineQuality(cur, history, cfg.Strength)
		}
	default:
		out = []Sample{blendLinear(cur, history, cfg.Strength)}
	}

	if budget := cfg.MaxProcessingTimeMs; budget > 0 {
		elapsedMs := float64(clock().Sub(start)) / float64(time.Millisecond)
		if elapsedMs > budget {
			Logger().Warn("ink: smoothing exceeded time budget, degrading",
				"elapsed_ms", elapsedMs, "budget_ms", budget)
			return []Sample{blendNeighbors(cur, history)}
		}
	}
	return out
}

// adaptiveMethod estimates drawing speed from the recent inter-sample
// distance and time and picks the method accordingly.
func adaptiveMethod(cur Sample, history []Sample) SmoothingMethod {
	n := len(history)
	if n == 0 {
		return MethodLinear
	}
	window := history
	if n > 4 {
		window = history[n-4:]
	}
	dist := 0.0
	prev := window[0]
	for _, s := range window[1:] {
		dist += s.Point().Distance(prev.Point())
		prev = s
	}
	dist += cur.Point().Distance(prev.Point())
	dt := cur.TimeMs - window[0].TimeMs
	if dt <= 0 {
		return MethodLinear
	}
	if dist/dt > adaptiveSpeedThreshold {
		return MethodLinear
	}
	return MethodCatmullRom
}

// blendLinear pulls the current point toward the midpoint of its two
// predecessors by strength. With fewer than two history samples the point
// is an endpoint and passes through untouched.
func blendLinear(cur Sample, history []Sample, strength float64) Sample {
	n := len(history)
	if n < 2 {
		return cur
	}
	mid := history[n-1].Point().Midpoint(history[n-2].Point())
	return cur.WithPoint(cur.Point().Lerp(mid, strength))
}

// blendNeighbors is the degraded fallback when the time budget is blown:
// a single-point blend of the current sample with its two nearest history
// neighbors, equal weights.
func blendNeighbors(cur Sample, history []Sample) Sample {
	n := len(history)
	if n < 2 {
		return cur
	}
	a := history[n-2].Point()
	b := history[n-1].Point()
	c := cur.Point()
	return cur.WithPoint(Point{
		X: (a.X + b.X + c.X) / 3,
		Y: (a.Y + b.Y + c.Y) / 3,
	})
}

// splineRealtime interpolates only the newest segment (from the last
// history sample to the current one), inserting one extra point at low
// strength and two at high strength. The segment's trailing tangent comes
// from mirroring the current point, since no later point exists yet.
func splineRealtime(cur Sample, history []Sample, strength float64) []Sample {
	n := len(history)
	from := history[n-1]
	seg := CatmullRom{
		P0: history[n-2].Point(),
		P1: from.Point(),
		P2: cur.Point(),
		P3: mirrorPoint(cur.Point(), from.Point()),
	}

	var ts []float64
	if strength >= 0.5 {
		ts = []float64{1.0 / 3, 2.0 / 3}
	} else {
		ts = []float64{0.5}
	}

	out := make([]Sample, 0, len(ts)+1)
	for _, t := range ts {
		out = append(out, splineSample(seg, from, cur, t))
	}
	return append(out, cur)
}

// splineQuality densifies the newest segment at a resolution scaled by
// strength, using real history points for both tangents where available.
// Recomputing the whole visible window would re-emit points the consumer
// already holds, so quality mode trades window-wide recomputation for a
// denser leading edge.
func splineQuality(cur Sample, history []Sample, strength float64) []Sample {
	n := len(history)
	from := history[n-1]
	seg := CatmullRom{
		P0: history[n-2].Point(),
		P1: from.Point(),
		P2: cur.Point(),
		P3: mirrorPoint(cur.Point(), from.Point()),
	}

	res := 2 + int(strength*6)
	out := make([]Sample, 0, res)
	for k := 1; k < res; k++ {
		t := float64(k) / float64(res)
		out = append(out, splineSample(seg, from, cur, t))
	}
	return append(out, cur)
}

// mirrorPoint reflects prev through p, extrapolating a phantom point that
// continues the segment's direction.
func mirrorPoint(p, prev Point) Point {
	return Point{X: 2*p.X - prev.X, Y: 2*p.Y - prev.Y}
}
