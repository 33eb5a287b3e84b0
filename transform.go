package ink

import (
	"errors"
	"fmt"
)

// ErrInvalidDisplay indicates a CoordinateTransform or Pipeline was
// constructed against a degenerate display target (zero or negative size).
var ErrInvalidDisplay = errors.New("ink: invalid display metrics")

// TransformError wraps a matrix failure that occurred while moving a point
// between coordinate spaces. It records which direction failed and the
// offending input, to aid debugging of configuration faults.
type TransformError struct {
	Direction string // e.g. "canvasToPointer"
	Input     Point
	Err       error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("ink: %s transform of (%g, %g): %v",
		e.Direction, e.Input.X, e.Input.Y, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CoordinateTransform owns the matrices that relate the four coordinate
// spaces of the pipeline:
//
//   - pointer space: raw device coordinates over the display surface
//   - canvas space: the fixed logical box [0, logical]^2 all correction
//     math runs in
//   - render space: the symmetric [-1, 1]^2 box with y up, consumed by
//     the renderer
//   - view space: canvas space after user pan, rotation and zoom
//
// All forward matrices are recomputed from scratch whenever the display
// size or the view state changes, rather than updated incrementally, so
// repeated changes cannot accumulate drift. Inverses are computed at
// rebuild time; a singular matrix poisons the affected direction and every
// later call in that direction reports a *TransformError.
//
// A CoordinateTransform is not safe for concurrent use.
type CoordinateTransform struct {
	display DisplayMetrics
	logical float64
	view    ViewState

	pointerToCanvas Matrix
	canvasToPointer Matrix
	canvasToRender  Matrix
	renderToCanvas  Matrix
	canvasToView    Matrix
	viewToCanvas    Matrix

	// per-direction inversion faults captured at rebuild
	canvasToPointerErr error
	viewToCanvasErr    error
}

// NewCoordinateTransform creates a transform for the given display surface
// and canvas logical size. Pass DefaultLogicalSize for the reference
// configuration. Construction fails fast on a degenerate display.
func NewCoordinateTransform(display DisplayMetrics, logical float64) (*CoordinateTransform, error) {
	if !display.Valid() || logical <= 0 {
		return nil, fmt.Errorf("%w: %gx%g (logical %g)",
			ErrInvalidDisplay, display.Width, display.Height, logical)
	}
	ct := &CoordinateTransform{
		display: display,
		logical: logical,
		view:    DefaultViewState(),
	}
	ct.rebuild()
	return ct, nil
}

// LogicalSize returns the canvas logical box side length.
func (ct *CoordinateTransform) LogicalSize() float64 {
	return ct.logical
}

// ViewState returns the current view parameters.
func (ct *CoordinateTransform) ViewState() ViewState {
	return ct.view
}

// SetDisplayMetrics replaces the display size and rebuilds all matrices.
func (ct *CoordinateTransform) SetDisplayMetrics(display DisplayMetrics) error {
	if !display.Valid() {
		return fmt.Errorf("%w: %gx%g", ErrInvalidDisplay, display.Width, display.Height)
	}
	ct.display = display
	ct.rebuild()
	return nil
}

// SetViewState replaces the view parameters and rebuilds all matrices.
// The transform does not poll for changes; the host must call this
// whenever zoom, pan or rotation change.
func (ct *CoordinateTransform) SetViewState(view ViewState) {
	ct.view = view
	ct.rebuild()
}

// rebuild recomputes every matrix pair from the current display and view
// parameters.
func (ct *CoordinateTransform) rebuild() {
	l := ct.logical

	// Pointer space scales onto the canvas logical box.
	ct.pointerToCanvas = Scale(l/ct.display.Width, l/ct.display.Height)
	ct.canvasToPointer, ct.canvasToPointerErr = ct.pointerToCanvas.Inverse()

	// Canvas [0, l]^2 maps onto render [-1, 1]^2 with the vertical axis
	// inverted: (0,0) -> (-1,1), (l,l) -> (1,-1).
	ct.canvasToRender = Translate(-1, 1).Multiply(Scale(2/l, -2/l))
	// The render mapping depends only on the logical size, which is
	// validated at construction, so this inverse cannot fail.
	ct.renderToCanvas, _ = ct.canvasToRender.Inverse()

	// View = zoom about center, after rotation about center, after pan.
	c := l / 2
	ct.canvasToView = ScaleAround(ct.view.Zoom, ct.view.Zoom, c, c).
		Multiply(RotateAround(ct.view.Rotation, c, c)).
		Multiply(Translate(ct.view.Pan.X, ct.view.Pan.Y))
	ct.viewToCanvas, ct.viewToCanvasErr = ct.canvasToView.Inverse()
}

// PointerToCanvas maps a raw pointer-space position into canvas space,
// clamped to the canvas logical box.
func (ct *CoordinateTransform) PointerToCanvas(p Point) Point {
	return clampToCanvas(ct.pointerToCanvas.TransformPoint(p), ct.logical)
}

// CanvasToPointer maps a canvas-space position back to pointer space.
func (ct *CoordinateTransform) CanvasToPointer(p Point) (Point, error) {
	if ct.canvasToPointerErr != nil {
		return Point{}, &TransformError{Direction: "canvasToPointer", Input: p, Err: ct.canvasToPointerErr}
	}
	return ct.canvasToPointer.TransformPoint(p), nil
}

// CanvasToRender maps a canvas-space position into render space, clamped
// to [-1, 1]^2.
func (ct *CoordinateTransform) CanvasToRender(p Point) Point {
	return clampToRender(ct.canvasToRender.TransformPoint(p))
}

// RenderToCanvas maps a render-space position back into canvas space,
// clamped to the canvas logical box.
func (ct *CoordinateTransform) RenderToCanvas(p Point) Point {
	return clampToCanvas(ct.renderToCanvas.TransformPoint(p), ct.logical)
}

// CanvasToView applies the current pan, rotation and zoom to a
// canvas-space position.
func (ct *CoordinateTransform) CanvasToView(p Point) Point {
	return ct.canvasToView.TransformPoint(p)
}

// ViewToCanvas maps a view-space position back into canvas space, clamped
// to the canvas logical box. It fails when the view is degenerate
// (zero zoom).
func (ct *CoordinateTransform) ViewToCanvas(p Point) (Point, error) {
	if ct.viewToCanvasErr != nil {
		return Point{}, &TransformError{Direction: "viewToCanvas", Input: p, Err: ct.viewToCanvasErr}
	}
	return clampToCanvas(ct.viewToCanvas.TransformPoint(p), ct.logical), nil
}
