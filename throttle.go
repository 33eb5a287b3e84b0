package ink

import (
	"sync"
	"time"
)

// ThrottleConfig tunes how aggressively move events are coalesced.
type ThrottleConfig struct {
	// MinTimeIntervalMs is the minimum event-time spacing between emitted
	// moves. Moves arriving faster are buffered.
	MinTimeIntervalMs float64 `toml:"min_time_interval_ms"`

	// MinDistance is the minimum canvas-space distance between emitted
	// moves. Moves closer than this to the last emission are buffered.
	MinDistance float64 `toml:"min_distance"`

	// MaxBufferSize bounds the internal buffer; the oldest entries are
	// dropped first when it overflows.
	MaxBufferSize int `toml:"max_buffer_size"`

	// ForceFlushIntervalMs bounds the worst-case latency of any buffered
	// move: when this much time has passed since the last emission, the
	// newest buffered move is emitted even though the guards would hold
	// it back.
	ForceFlushIntervalMs float64 `toml:"force_flush_interval_ms"`
}

// DefaultThrottleConfig returns the reference throttle settings.
func DefaultThrottleConfig() ThrottleConfig {
	return ThrottleConfig{
		MinTimeIntervalMs:    8,
		MinDistance:          1.0,
		MaxBufferSize:        32,
		ForceFlushIntervalMs: 16,
	}
}

// throttleState is the complete state of the throttle machine. It is a
// plain value stepped by throttleStep, so the emission logic is testable
// without timers or object identity.
type throttleState struct {
	buffer    []Event
	hasMarker bool
	last      Sample // sample of the last emitted event
	active    bool   // a stroke is in progress
}

// throttleStep advances the machine by one event and returns the new state
// plus the events to emit, in order.
//
//   - start: clears all state, emits unconditionally.
//   - move: buffered when it is too close in time or distance to the last
//     emission; the newest buffered move is force-flushed once
//     ForceFlushIntervalMs has elapsed since the last emission. A move that
//     clears both guards flushes the newest buffered entry ahead of itself.
//   - end/cancel: flushes the newest buffered entry, then always emits the
//     terminal event, so stroke boundaries are never dropped.
func throttleStep(st throttleState, ev Event, cfg ThrottleConfig) (throttleState, []Event) {
	switch ev.Kind {
	case KindStart:
		st = throttleState{active: true}
		st.hasMarker = true
		st.last = ev.Sample
		return st, []Event{ev}

	case KindMove:
		if !st.hasMarker {
			// Move without a start; emit rather than guess at guards.
			st.active = true
			st.hasMarker = true
			st.last = ev.Sample
			return st, []Event{ev}
		}
		elapsed := ev.Sample.TimeMs - st.last.TimeMs
		dist := ev.Sample.Point().Distance(st.last.Point())
		if elapsed < cfg.MinTimeIntervalMs || dist < cfg.MinDistance {
			st.buffer = append(st.buffer, ev)
			// A non-positive configured size still retains the newest
			// entry; the forced-flush branch below depends on it.
			size := cfg.MaxBufferSize
			if size < 1 {
				size = 1
			}
			if over := len(st.buffer) - size; over > 0 {
				st.buffer = append(st.buffer[:0], st.buffer[over:]...)
			}
			if elapsed >= cfg.ForceFlushIntervalMs {
				newest := st.buffer[len(st.buffer)-1]
				st.buffer = st.buffer[:0]
				st.last = newest.Sample
				return st, []Event{newest}
			}
			return st, nil
		}
		var out []Event
		if n := len(st.buffer); n > 0 {
			out = append(out, st.buffer[n-1])
			st.buffer = st.buffer[:0]
		}
		out = append(out, ev)
		st.last = ev.Sample
		return st, out

	default: // KindEnd, KindCancel
		var out []Event
		if n := len(st.buffer); n > 0 {
			out = append(out, st.buffer[n-1])
		}
		out = append(out, ev)
		return throttleState{}, out
	}
}

// Throttler coalesces high-frequency move events while guaranteeing that
// stroke-start and stroke-end events are always delivered. It owns a
// periodic forced-flush timer armed on stroke start and disarmed
// deterministically on end, cancel and Destroy, so timers never leak
// across stroke boundaries.
//
// Process may be called from one goroutine at a time; the internal mutex
// exists only because the flush timer fires on its own goroutine.
type Throttler struct {
	mu       sync.Mutex
	cfg      ThrottleConfig
	st       throttleState
	timer    *time.Timer
	timerGen uint64
	timerOff bool

	// emit receives events produced synchronously by Process, on the
	// caller's goroutine.
	emit func(Event)

	// timerEmit receives events produced by the forced-flush timer, on
	// the timer's goroutine. When nil, emit is used. Owners that hold a
	// lock around Process calls set this to a re-locking variant.
	timerEmit func(Event)
}

// NewThrottler creates a throttler delivering emitted events to emit.
func NewThrottler(cfg ThrottleConfig, emit func(Event)) *Throttler {
	return &Throttler{cfg: cfg, emit: emit}
}

// SetTimerEmit sets the sink for events flushed by the periodic timer.
// Must be called before the first Process.
func (t *Throttler) SetTimerEmit(sink func(Event)) {
	t.timerEmit = sink
}

// SetTimerEnabled turns the background forced-flush timer on or off.
// With the timer off, forced flushing still happens inline on move events
// based on their timestamps, which keeps tests deterministic.
func (t *Throttler) SetTimerEnabled(enabled bool) {
	t.mu.Lock()
	t.timerOff = !enabled
	if t.timerOff {
		t.disarmTimerLocked()
	}
	t.mu.Unlock()
}

// SetConfig replaces the throttle configuration. It takes effect on the
// next processed event.
func (t *Throttler) SetConfig(cfg ThrottleConfig) {
	t.mu.Lock()
	t.cfg = cfg
	t.mu.Unlock()
}

// Process runs one event through the throttle machine and synchronously
// delivers any resulting emissions.
func (t *Throttler) Process(ev Event) {
	t.mu.Lock()
	st, out := throttleStep(t.st, ev, t.cfg)
	t.st = st
	switch {
	case ev.Kind == KindStart:
		t.armTimerLocked()
	case ev.Kind.Terminal():
		t.disarmTimerLocked()
	}
	t.mu.Unlock()

	for _, e := range out {
		t.emit(e)
	}
}

// FlushPending emits the newest buffered move, if any, discarding the
// rest of the buffer. This is what the forced-flush timer calls; tests may
// call it directly for deterministic behavior.
func (t *Throttler) FlushPending() {
	t.mu.Lock()
	var flushed *Event
	if n := len(t.st.buffer); n > 0 {
		newest := t.st.buffer[n-1]
		t.st.buffer = t.st.buffer[:0]
		t.st.last = newest.Sample
		flushed = &newest
	}
	t.mu.Unlock()

	if flushed != nil {
		sink := t.timerEmit
		if sink == nil {
			sink = t.emit
		}
		sink(*flushed)
	}
}

// Destroy disarms the timer and clears all state. The throttler must not
// be used afterwards.
func (t *Throttler) Destroy() {
	t.mu.Lock()
	t.disarmTimerLocked()
	t.st = throttleState{}
	t.mu.Unlock()
}

func (t *Throttler) armTimerLocked() {
	t.disarmTimerLocked()
	if t.timerOff || t.cfg.ForceFlushIntervalMs <= 0 {
		return
	}
	gen := t.timerGen
	interval := time.Duration(t.cfg.ForceFlushIntervalMs * float64(time.Millisecond))
	t.timer = time.AfterFunc(interval, func() { t.timerTick(gen, interval) })
}

func (t *Throttler) disarmTimerLocked() {
	t.timerGen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// timerTick flushes pending moves and re-arms itself while its generation
// is still current. A stale generation means the stroke ended or the
// throttler was destroyed between firing and running.
func (t *Throttler) timerTick(gen uint64, interval time.Duration) {
	t.mu.Lock()
	if gen != t.timerGen {
		t.mu.Unlock()
		return
	}
	t.timer = time.AfterFunc(interval, func() { t.timerTick(gen, interval) })
	t.mu.Unlock()

	t.FlushPending()
}
