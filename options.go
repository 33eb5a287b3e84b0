package ink

import "time"

// PipelineOption configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	p, err := ink.NewPipeline(display,
//	    ink.WithEmit(renderer.Consume),
//	    ink.WithMonitor(ink.NewPerformanceMonitor()),
//	)
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	config      Config
	logical     float64
	emit        EmitFunc
	monitor     *PerformanceMonitor
	clock       func() time.Time
	disableTick bool
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		config:  DefaultConfig(),
		logical: DefaultLogicalSize,
		clock:   time.Now,
	}
}

// WithConfig sets the initial throttle and correction configuration.
func WithConfig(cfg Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.config = cfg
	}
}

// WithLogicalSize overrides the canvas logical box side length.
// The default is DefaultLogicalSize.
func WithLogicalSize(size float64) PipelineOption {
	return func(o *pipelineOptions) {
		o.logical = size
	}
}

// WithEmit sets the downstream consumer callback. Each emitted event must
// be treated as immutable and ordered.
func WithEmit(emit EmitFunc) PipelineOption {
	return func(o *pipelineOptions) {
		o.emit = emit
	}
}

// WithMonitor attaches a performance monitor. The pipeline feeds it one
// timing sample per raw event; it never influences correction output.
func WithMonitor(m *PerformanceMonitor) PipelineOption {
	return func(o *pipelineOptions) {
		o.monitor = m
	}
}

// WithClock injects the time source used for performance timing and the
// smoothing budget. Intended for tests; the default is time.Now.
func WithClock(clock func() time.Time) PipelineOption {
	return func(o *pipelineOptions) {
		o.clock = clock
	}
}

// WithoutFlushTimer disables the throttler's periodic forced-flush timer.
// The inline forced-flush check on move events still runs, so tests get
// deterministic behavior from event timestamps alone.
func WithoutFlushTimer() PipelineOption {
	return func(o *pipelineOptions) {
		o.disableTick = true
	}
}
