package ink

import (
	"sort"
	"time"
)

// DefaultDelayTarget is the per-sample latency target: one frame at 60fps.
const DefaultDelayTarget = 16 * time.Millisecond

// defaultMonitorCapacity bounds the monitor's sample ring: two seconds of
// samples at 60fps.
const defaultMonitorCapacity = 120

// Trend describes how recent latency compares to the window before it.
type Trend uint8

const (
	TrendStable Trend = iota
	TrendImproving
	TrendDegrading
)

// String returns the lowercase name of the trend.
func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendDegrading:
		return "degrading"
	}
	return "stable"
}

// trendHysteresis is the relative change required before a trend reports
// anything other than stable.
const trendHysteresis = 0.1

// PerfSample is one timing record at the pipeline boundary.
type PerfSample struct {
	// InputDelayMs is how long the raw event waited between its device
	// timestamp and entering the pipeline.
	InputDelayMs float64

	// ProcessingMs is how long the pipeline spent on the event.
	ProcessingMs float64

	At time.Time
}

// PerfStats are rolling statistics over the monitor's ring.
type PerfStats struct {
	Count int

	AvgDelayMs float64
	MaxDelayMs float64
	P95DelayMs float64

	AvgProcessingMs float64
	MaxProcessingMs float64

	// Violations counts samples whose input delay exceeded the target.
	Violations    int
	ViolationRate float64
}

// PerformanceMonitor records per-sample timings into a bounded ring and
// derives rolling statistics and target-violation detection. It is purely
// an observer: it never alters pipeline data. Pass one instance by
// reference to whichever component should report timings rather than
// relying on ambient global state.
//
// The monitor is not safe for concurrent use; the Pipeline feeds it from
// its own serialized path.
type PerformanceMonitor struct {
	target   time.Duration
	capacity int
	samples  []PerfSample
	head     int // next write position once the ring is full
	full     bool
}

// NewPerformanceMonitor creates a monitor with the default 16ms target.
func NewPerformanceMonitor() *PerformanceMonitor {
	return NewPerformanceMonitorWithTarget(DefaultDelayTarget)
}

// NewPerformanceMonitorWithTarget creates a monitor with a custom latency
// target.
func NewPerformanceMonitorWithTarget(target time.Duration) *PerformanceMonitor {
	return &PerformanceMonitor{
		target:   target,
		capacity: defaultMonitorCapacity,
		samples:  make([]PerfSample, 0, defaultMonitorCapacity),
	}
}

// Target returns the configured latency target.
func (m *PerformanceMonitor) Target() time.Duration {
	return m.target
}

// Record adds one timing sample, evicting the oldest once the ring is
// full.
func (m *PerformanceMonitor) Record(s PerfSample) {
	if len(m.samples) < m.capacity {
		m.samples = append(m.samples, s)
		return
	}
	m.full = true
	m.samples[m.head] = s
	m.head = (m.head + 1) % m.capacity
}

// Len returns the number of recorded samples.
func (m *PerformanceMonitor) Len() int {
	return len(m.samples)
}

// ordered returns the samples oldest-first.
func (m *PerformanceMonitor) ordered() []PerfSample {
	if !m.full || m.head == 0 {
		return m.samples
	}
	out := make([]PerfSample, 0, len(m.samples))
	out = append(out, m.samples[m.head:]...)
	out = append(out, m.samples[:m.head]...)
	return out
}

// Stats computes rolling statistics over the recorded samples.
func (m *PerformanceMonitor) Stats() PerfStats {
	n := len(m.samples)
	if n == 0 {
		return PerfStats{}
	}

	targetMs := float64(m.target) / float64(time.Millisecond)
	delays := make([]float64, 0, n)
	var st PerfStats
	st.Count = n
	for _, s := range m.samples {
		delays = append(delays, s.InputDelayMs)
		st.AvgDelayMs += s.InputDelayMs
		st.AvgProcessingMs += s.ProcessingMs
		if s.InputDelayMs > st.MaxDelayMs {
			st.MaxDelayMs = s.InputDelayMs
		}
		if s.ProcessingMs > st.MaxProcessingMs {
			st.MaxProcessingMs = s.ProcessingMs
		}
		if s.InputDelayMs > targetMs {
			st.Violations++
		}
	}
	st.AvgDelayMs /= float64(n)
	st.AvgProcessingMs /= float64(n)
	st.ViolationRate = float64(st.Violations) / float64(n)

	sort.Float64s(delays)
	idx := int(float64(n)*0.95) - 1
	if idx < 0 {
		idx = 0
	}
	st.P95DelayMs = delays[idx]

	return st
}

// IsAcceptable reports whether the pipeline is holding its latency budget:
// average delay at most the target, 95th percentile at most 1.5x the
// target, average processing time at most 1ms, and a violation rate under
// 5%. An empty monitor is acceptable.
func (m *PerformanceMonitor) IsAcceptable() bool {
	if len(m.samples) == 0 {
		return true
	}
	st := m.Stats()
	targetMs := float64(m.target) / float64(time.Millisecond)
	return st.AvgDelayMs <= targetMs &&
		st.P95DelayMs <= 1.5*targetMs &&
		st.AvgProcessingMs <= 1.0 &&
		st.ViolationRate < 0.05
}

// Trend compares the average input delay of the most recent half of the
// ring against the half before it, with a small hysteresis so jitter does
// not flap the report.
func (m *PerformanceMonitor) Trend() Trend {
	samples := m.ordered()
	n := len(samples)
	if n < 4 {
		return TrendStable
	}
	half := n / 2
	prior := samples[n-2*half : n-half]
	recent := samples[n-half:]

	avg := func(ss []PerfSample) float64 {
		sum := 0.0
		for _, s := range ss {
			sum += s.InputDelayMs
		}
		return sum / float64(len(ss))
	}

	priorAvg := avg(prior)
	recentAvg := avg(recent)
	if priorAvg <= 0 {
		return TrendStable
	}
	switch {
	case recentAvg < priorAvg*(1-trendHysteresis):
		return TrendImproving
	case recentAvg > priorAvg*(1+trendHysteresis):
		return TrendDegrading
	}
	return TrendStable
}

// Reset discards all recorded samples.
func (m *PerformanceMonitor) Reset() {
	m.samples = m.samples[:0]
	m.head = 0
	m.full = false
}
