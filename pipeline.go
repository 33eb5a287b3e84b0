package ink

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmitFunc receives corrected events from the pipeline, one call per
// emitted event, in order.
type EmitFunc func(Event)

// Pipeline is the facade over the full input path:
//
//	raw device sample -> normalizer -> throttler -> streaming corrector
//	-> emit callback
//
// The pipeline is designed for a single producer goroutine; its mutex
// exists only to serialize the throttler's forced-flush timer against that
// producer. Construction fails fast on a degenerate display target.
type Pipeline struct {
	mu        sync.Mutex
	transform *CoordinateTransform
	throttler *Throttler
	corrector *StreamingCorrector
	monitor   *PerformanceMonitor
	emit      EmitFunc
	clock     func() time.Time
	cfg       Config

	stroke StrokeID
}

// NewPipeline creates a pipeline for the given display surface.
func NewPipeline(display DisplayMetrics, opts ...PipelineOption) (*Pipeline, error) {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	transform, err := NewCoordinateTransform(display, o.logical)
	if err != nil {
		return nil, err
	}

	emit := o.emit
	if emit == nil {
		emit = func(Event) {}
	}

	p := &Pipeline{
		transform: transform,
		monitor:   o.monitor,
		emit:      emit,
		clock:     o.clock,
		cfg:       o.config,
	}

	p.corrector = NewStreamingCorrector(o.config.Correction)
	p.corrector.SetClock(o.clock)

	p.throttler = NewThrottler(o.config.Throttle, p.deliver)
	p.throttler.SetTimerEmit(func(ev Event) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.deliver(ev)
	})
	if o.disableTick {
		p.throttler.SetTimerEnabled(false)
	}

	return p, nil
}

// Transform returns the pipeline's coordinate transform, for hosts that
// need to project points themselves (e.g. hit testing).
func (p *Pipeline) Transform() *CoordinateTransform {
	return p.transform
}

// Config returns the current configuration.
func (p *Pipeline) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// SetConfig replaces the throttle and correction configuration. Updates
// take effect on the next processed sample.
func (p *Pipeline) SetConfig(cfg Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	p.throttler.SetConfig(cfg.Throttle)
	p.corrector.SetConfig(cfg.Correction)
}

// SetViewState forwards new view parameters to the coordinate transform.
func (p *Pipeline) SetViewState(view ViewState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transform.SetViewState(view)
}

// SetDisplayMetrics forwards a new display size to the coordinate
// transform.
func (p *Pipeline) SetDisplayMetrics(display DisplayMetrics) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transform.SetDisplayMetrics(display)
}

// HandleRaw runs one raw device sample through the pipeline. Emissions
// happen synchronously on the caller's goroutine before HandleRaw
// returns (except forced flushes from the background timer).
func (p *Pipeline) HandleRaw(raw RawPointerEvent) {
	start := p.clock()

	p.mu.Lock()
	ev := Normalize(raw, p.transform)
	if ev.Kind == KindStart {
		p.stroke = uuid.New()
		p.corrector.StartStroke(ev.Device)
	}
	ev.Stroke = p.stroke
	p.throttler.Process(ev)

	if p.monitor != nil {
		end := p.clock()
		delay := float64(start.UnixNano())/1e6 - raw.TimeMs
		if delay < 0 {
			delay = 0
		}
		p.monitor.Record(PerfSample{
			InputDelayMs: delay,
			ProcessingMs: float64(end.Sub(start)) / float64(time.Millisecond),
			At:           start,
		})
	}
	p.mu.Unlock()
}

// deliver runs one throttled event through the streaming corrector and
// emits the results. Spline smoothing may insert interpolated points ahead
// of the event's own sample; inserts are emitted as moves so only the
// final emission carries a terminal kind.
//
// Called with p.mu held.
func (p *Pipeline) deliver(ev Event) {
	outs := p.corrector.ProcessPoint(ev.Sample)
	for i, s := range outs {
		e := ev
		e.Sample = s
		if i < len(outs)-1 {
			e.Kind = KindMove
		}
		p.emit(e)
	}
}

// FlushPending forces the newest buffered move out of the throttler, as
// the background timer would.
func (p *Pipeline) FlushPending() {
	p.throttler.FlushPending()
}

// Destroy disarms the flush timer and clears all stroke state. The
// pipeline must not be used afterwards.
func (p *Pipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.throttler.Destroy()
	p.corrector.Reset()
}
