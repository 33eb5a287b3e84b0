package ink

// DefaultLogicalSize is the side length of the canvas logical box in the
// reference configuration. Canvas-space coordinates run from 0 to the
// logical size on both axes.
const DefaultLogicalSize = 1024.0

// DisplayMetrics describes the on-screen size of the pointer input surface,
// in the units raw device samples arrive in (typically CSS pixels).
type DisplayMetrics struct {
	Width  float64
	Height float64
}

// Valid reports whether the metrics describe a usable, non-degenerate
// surface.
func (d DisplayMetrics) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// ViewState holds the user-controlled view parameters applied on top of
// canvas space: zoom and rotation about the canvas center, and a pan
// offset in canvas units.
type ViewState struct {
	Zoom     float64
	Pan      Point
	Rotation float64 // radians
}

// DefaultViewState returns the neutral view: no pan, no rotation, 1x zoom.
func DefaultViewState() ViewState {
	return ViewState{Zoom: 1}
}

// clamp limits v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampToCanvas limits a point to the canvas logical box [0, size]^2.
func clampToCanvas(p Point, size float64) Point {
	return Point{
		X: clamp(p.X, 0, size),
		Y: clamp(p.Y, 0, size),
	}
}

// clampToRender limits a point to the render box [-1, 1]^2.
func clampToRender(p Point) Point {
	return Point{
		X: clamp(p.X, -1, 1),
		Y: clamp(p.Y, -1, 1),
	}
}
