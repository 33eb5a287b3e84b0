// Package ink normalizes, throttles and corrects raw pointer input for
// freehand drawing.
//
// # Overview
//
// ink sits between a pointer event source (mouse, pen or touch) and a
// renderer. It turns heterogeneous device samples into a clean,
// low-latency stream of canvas-space drawing points: coordinates pass
// through a chain of exact homogeneous transforms, high-frequency events
// are coalesced without losing stroke boundaries, and jittery pressure and
// position readings are smoothed in real time under a hard per-point
// latency budget.
//
// # Quick Start
//
//	p, err := ink.NewPipeline(ink.DisplayMetrics{Width: 800, Height: 600},
//	    ink.WithEmit(func(ev ink.Event) {
//	        // feed the renderer
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Destroy()
//
//	p.HandleRaw(ink.RawPointerEvent{Kind: ink.KindStart, X: 120, Y: 80, Pressure: 0.4, TimeMs: now})
//	p.HandleRaw(ink.RawPointerEvent{Kind: ink.KindMove, X: 124, Y: 83, Pressure: 0.5, TimeMs: now + 8})
//	p.HandleRaw(ink.RawPointerEvent{Kind: ink.KindEnd, X: 130, Y: 90, Pressure: 0.5, TimeMs: now + 16})
//
// # Architecture
//
// The pipeline is a chain of small, independently testable stages:
//
//   - Matrix / CoordinateTransform: 3x3 homogeneous transforms between
//     pointer, canvas, render and view space
//   - Normalize: raw device sample -> canonical Event
//   - Throttler: event coalescing with guaranteed stroke boundaries
//   - StreamingCorrector: pressure correction and coordinate smoothing
//     over a bounded history of raw samples
//   - PerformanceMonitor: rolling latency statistics, observation only
//
// Everything runs synchronously on the producer's goroutine; the only
// background activity is the throttler's forced-flush timer.
//
// # Configuration
//
// ThrottleConfig and CorrectionConfig carry documented defaults and can be
// replaced at any time via Pipeline.SetConfig; see LoadConfig and
// WatchConfig for the TOML file surface.
package ink
