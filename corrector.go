package ink

import "time"

// CorrectionConfig bundles the two correction stages. Pressure correction
// always runs before coordinate smoothing when both are enabled; a
// disabled stage is a pass-through.
type CorrectionConfig struct {
	Pressure  PressureConfig  `toml:"pressure"`
	Smoothing SmoothingConfig `toml:"smoothing"`
}

// DefaultCorrectionConfig returns the reference correction settings.
func DefaultCorrectionConfig() CorrectionConfig {
	return CorrectionConfig{
		Pressure:  DefaultPressureConfig(),
		Smoothing: DefaultSmoothingConfig(),
	}
}

// minHistoryCap is the floor on the corrector's history capacity,
// regardless of configured windows.
const minHistoryCap = 10

// StreamingCorrector owns the bounded history buffer for one in-progress
// stroke and applies the correction stages to each incoming sample.
//
// Stages are run against the history of raw (uncorrected) samples, and the
// raw sample is what gets appended to history afterwards. Correcting
// against corrected history would compound smoothing error over a long
// stroke.
//
// A StreamingCorrector is not safe for concurrent use; the Pipeline
// serializes access to it.
type StreamingCorrector struct {
	cfg     CorrectionConfig
	device  DeviceClass
	history []Sample
	cap     int
	clock   func() time.Time
}

// NewStreamingCorrector creates a corrector with the given configuration.
func NewStreamingCorrector(cfg CorrectionConfig) *StreamingCorrector {
	c := &StreamingCorrector{clock: time.Now}
	c.SetConfig(cfg)
	return c
}

// SetConfig replaces the correction configuration and resizes the history
// capacity. It takes effect on the next processed sample.
func (c *StreamingCorrector) SetConfig(cfg CorrectionConfig) {
	c.cfg = cfg
	c.cap = minHistoryCap
	if w := cfg.Pressure.SmoothingWindow; w > c.cap {
		c.cap = w
	}
	if m := cfg.Smoothing.MinPoints; m > c.cap {
		c.cap = m
	}
	c.trim()
}

// SetClock injects the time source used for the smoothing budget.
// Intended for tests; the default is time.Now.
func (c *StreamingCorrector) SetClock(clock func() time.Time) {
	c.clock = clock
}

// StartStroke resets history for a new stroke and records the device
// class used for pressure calibration.
func (c *StreamingCorrector) StartStroke(device DeviceClass) {
	c.device = device
	c.Reset()
}

// Reset clears the stroke history.
func (c *StreamingCorrector) Reset() {
	c.history = c.history[:0]
}

// HistoryLen returns the current history length.
func (c *StreamingCorrector) HistoryLen() int {
	return len(c.history)
}

// ProcessPoint runs the correction pipeline on one sample and returns the
// samples to emit, in order. The pipeline never drops a sample: a stage
// that panics is logged and degrades to passing the original through.
func (c *StreamingCorrector) ProcessPoint(s Sample) []Sample {
	corrected := c.runPressure(s)
	out := c.runSmoothing(corrected)

	c.history = append(c.history, s)
	c.trim()
	return out
}

func (c *StreamingCorrector) runPressure(s Sample) (out Sample) {
	out = s
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("ink: pressure correction failed, passing sample through", "panic", r)
			out = s
		}
	}()
	return correctPressure(s, c.history, c.device, c.cfg.Pressure)
}

func (c *StreamingCorrector) runSmoothing(s Sample) (out []Sample) {
	out = []Sample{s}
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("ink: coordinate smoothing failed, passing sample through", "panic", r)
			out = []Sample{s}
		}
	}()
	return smoothCoordinates(s, c.history, c.cfg.Smoothing, c.clock)
}

func (c *StreamingCorrector) trim() {
	if over := len(c.history) - c.cap; over > 0 {
		c.history = append(c.history[:0], c.history[over:]...)
	}
}
