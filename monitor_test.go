package ink

import (
	"math"
	"testing"
	"time"
)

func recordDelays(m *PerformanceMonitor, delays ...float64) {
	for i, d := range delays {
		m.Record(PerfSample{InputDelayMs: d, ProcessingMs: 0.1, At: time.Unix(0, int64(i))})
	}
}

func TestMonitorStats(t *testing.T) {
	m := NewPerformanceMonitor()
	recordDelays(m, 10, 20, 30)

	st := m.Stats()
	if st.Count != 3 {
		t.Errorf("Count = %d, want 3", st.Count)
	}
	if math.Abs(st.AvgDelayMs-20) > 1e-9 {
		t.Errorf("AvgDelayMs = %g, want 20", st.AvgDelayMs)
	}
	if st.MaxDelayMs != 30 {
		t.Errorf("MaxDelayMs = %g, want 30", st.MaxDelayMs)
	}
	// 20 and 30 exceed the 16ms default target.
	if st.Violations != 2 {
		t.Errorf("Violations = %d, want 2", st.Violations)
	}
}

func TestMonitorEmptyStats(t *testing.T) {
	m := NewPerformanceMonitor()
	if st := m.Stats(); st.Count != 0 || st.AvgDelayMs != 0 {
		t.Errorf("empty Stats() = %+v, want zero value", st)
	}
	if !m.IsAcceptable() {
		t.Error("an empty monitor must be acceptable")
	}
}

func TestMonitorP95(t *testing.T) {
	m := NewPerformanceMonitorWithTarget(200 * time.Millisecond)
	for i := 1; i <= 100; i++ {
		m.Record(PerfSample{InputDelayMs: float64(i)})
	}
	st := m.Stats()
	if st.P95DelayMs != 95 {
		t.Errorf("P95DelayMs = %g, want 95", st.P95DelayMs)
	}
}

func TestMonitorIsAcceptable(t *testing.T) {
	tests := []struct {
		name       string
		delays     []float64
		processing float64
		want       bool
	}{
		{"well under target", []float64{5, 6, 5, 7}, 0.2, true},
		{"average over target", []float64{30, 30, 30, 30}, 0.2, false},
		{"slow processing", []float64{5, 5, 5, 5}, 2.0, false},
		{"violation rate too high", []float64{5, 5, 5, 40}, 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPerformanceMonitor()
			for _, d := range tt.delays {
				m.Record(PerfSample{InputDelayMs: d, ProcessingMs: tt.processing})
			}
			if got := m.IsAcceptable(); got != tt.want {
				t.Errorf("IsAcceptable() = %v, want %v (stats %+v)", got, tt.want, m.Stats())
			}
		})
	}
}

func TestMonitorRingBounded(t *testing.T) {
	m := NewPerformanceMonitor()
	recordDelays(m, make([]float64, 500)...)
	if got := m.Len(); got != defaultMonitorCapacity {
		t.Errorf("Len() = %d, want capacity %d", got, defaultMonitorCapacity)
	}
}

func TestMonitorRingEvictsOldest(t *testing.T) {
	m := NewPerformanceMonitor()
	for i := 0; i < defaultMonitorCapacity+10; i++ {
		m.Record(PerfSample{InputDelayMs: float64(i)})
	}
	ordered := m.ordered()
	if got := ordered[0].InputDelayMs; got != 10 {
		t.Errorf("oldest delay = %g, want 10 after eviction", got)
	}
	if got := ordered[len(ordered)-1].InputDelayMs; got != float64(defaultMonitorCapacity+9) {
		t.Errorf("newest delay = %g, want %d", got, defaultMonitorCapacity+9)
	}
}

func TestMonitorTrend(t *testing.T) {
	tests := []struct {
		name   string
		prior  float64
		recent float64
		want   Trend
	}{
		{"improving", 20, 5, TrendImproving},
		{"degrading", 5, 20, TrendDegrading},
		{"stable", 10, 10, TrendStable},
		{"within hysteresis", 10, 10.5, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPerformanceMonitor()
			for i := 0; i < 10; i++ {
				m.Record(PerfSample{InputDelayMs: tt.prior})
			}
			for i := 0; i < 10; i++ {
				m.Record(PerfSample{InputDelayMs: tt.recent})
			}
			if got := m.Trend(); got != tt.want {
				t.Errorf("Trend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonitorTrendNeedsSamples(t *testing.T) {
	m := NewPerformanceMonitor()
	recordDelays(m, 1, 100)
	if got := m.Trend(); got != TrendStable {
		t.Errorf("Trend() with too few samples = %v, want stable", got)
	}
}

func TestMonitorReset(t *testing.T) {
	m := NewPerformanceMonitor()
	recordDelays(m, 1, 2, 3)
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", m.Len())
	}
}
