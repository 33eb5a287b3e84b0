package ink

import "math"

// PressureConfig tunes the pressure correction stage.
type PressureConfig struct {
	Enabled bool `toml:"enabled"`

	// DeviceCalibration maps a device class name ("pen", "touch",
	// "mouse") to a pressure multiplier. Missing entries default to 1.0.
	DeviceCalibration map[string]float64 `toml:"device_calibration"`

	// SmoothingWindow is how many history samples feed the temporal
	// pressure filter.
	SmoothingWindow int `toml:"smoothing_window"`

	// MinPressureChange is the noise gate: a smaller change from the
	// previous sample's pressure is suppressed entirely.
	MinPressureChange float64 `toml:"min_pressure_change"`

	// FallbackPressure replaces readings from devices with no real
	// pressure signal (raw value exactly 0.5 or at most 0).
	FallbackPressure float64 `toml:"fallback_pressure"`
}

// DefaultPressureConfig returns the reference pressure settings.
func DefaultPressureConfig() PressureConfig {
	return PressureConfig{
		Enabled:           true,
		SmoothingWindow:   3,
		MinPressureChange: 0.01,
		FallbackPressure:  0.5,
	}
}

// correctPressure runs the pressure correction stage on one sample against
// the stroke history. Order of operations: no-signal fallback, device
// calibration, recency-weighted temporal smoothing, noise gate, final
// clamp. The input sample is returned with only its pressure replaced.
func correctPressure(cur Sample, history []Sample, device DeviceClass, cfg PressureConfig) Sample {
	if !cfg.Enabled {
		return cur
	}

	raw := cur.Pressure
	p := raw

	// A reading of exactly 0.5 (the normalizer's substitute) or at most 0
	// means the device carries no real pressure signal.
	if p == fallbackPressureValue || p <= 0 {
		p = cfg.FallbackPressure
	}

	if mult, ok := cfg.DeviceCalibration[device.String()]; ok {
		p *= mult
	}

	p = smoothPressure(p, history, cfg.SmoothingWindow)

	// Noise gate: reuse the previous pressure verbatim for sub-threshold
	// changes. The gate is skipped when both the incoming and previous
	// pressures sit exactly at the no-signal value, so strokes from
	// non-pressure devices are never masked by it.
	if n := len(history); n > 0 {
		prev := history[n-1].Pressure
		noSignalPair := raw == fallbackPressureValue && prev == fallbackPressureValue
		if !noSignalPair && math.Abs(p-prev) < cfg.MinPressureChange {
			p = prev
		}
	}

	cur.Pressure = clamp(p, 0, 1)
	return cur
}

// smoothPressure computes a linearly recency-weighted average over the
// last window history pressures plus the current value. History weights
// ramp 1..w oldest to newest; the current value gets 1.5x the largest
// historical weight, keeping the filter responsive to intentional pressure
// changes while damping jitter.
func smoothPressure(current float64, history []Sample, window int) float64 {
	if window <= 0 || len(history) == 0 {
		return current
	}
	start := len(history) - window
	if start < 0 {
		start = 0
	}
	recent := history[start:]

	sum := 0.0
	weightSum := 0.0
	for i, s := range recent {
		w := float64(i + 1)
		sum += s.Pressure * w
		weightSum += w
	}
	curWeight := 1.5 * float64(len(recent))
	sum += current * curWeight
	weightSum += curWeight

	return sum / weightSum
}
