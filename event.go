package ink

import "github.com/google/uuid"

// EventKind identifies where an event sits in a stroke's lifecycle.
// Every physical contact produces exactly one KindStart, zero or more
// KindMove, and exactly one KindEnd or KindCancel.
type EventKind uint8

const (
	KindStart EventKind = iota
	KindMove
	KindEnd
	KindCancel
)

// String returns the lowercase wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindMove:
		return "move"
	case KindEnd:
		return "end"
	case KindCancel:
		return "cancel"
	}
	return "unknown"
}

// Terminal reports whether the kind ends a stroke.
func (k EventKind) Terminal() bool {
	return k == KindEnd || k == KindCancel
}

// DeviceClass is the coarse class of the input device behind a sample.
type DeviceClass uint8

const (
	DeviceMouse DeviceClass = iota
	DevicePen
	DeviceTouch
)

// String returns the lowercase name of the device class. The names double
// as calibration map keys in PressureConfig.
func (d DeviceClass) String() string {
	switch d {
	case DevicePen:
		return "pen"
	case DeviceTouch:
		return "touch"
	}
	return "mouse"
}

// Tilt is a pen tilt pair in degrees. A nil *Tilt means the device
// reported no tilt, which is structurally distinct from a zero tilt.
type Tilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ButtonMask is a bitmask of pressed pointer buttons, in the order the
// device reports them (bit 0 = primary).
type ButtonMask uint32

// StrokeID identifies one stroke, minted when its start event enters the
// pipeline and carried on every event of that contact.
type StrokeID = uuid.UUID

// Sample is a canonical stroke point: a canvas-space position, a
// normalized pressure in [0, 1], and a monotonic timestamp in
// milliseconds. Samples are the unit of work for every stage past the
// normalizer. Stages never mutate a sample in place; they emit
// replacements.
type Sample struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
	TimeMs   float64 `json:"timeMs"`
}

// Point returns the positional part of the sample.
func (s Sample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// WithPoint returns a copy of the sample at a different position.
func (s Sample) WithPoint(p Point) Sample {
	s.X = p.X
	s.Y = p.Y
	return s
}

// Event is a normalized input event: a canonical sample plus the stroke
// lifecycle kind, the device class, and the optional fields that only some
// devices report.
type Event struct {
	Kind    EventKind   `json:"kind"`
	Device  DeviceClass `json:"device"`
	Stroke  StrokeID    `json:"stroke"`
	Sample  Sample      `json:"sample"`
	Buttons *ButtonMask `json:"buttons,omitempty"`
	Tilt    *Tilt       `json:"tilt,omitempty"`
}

// RawPointerEvent is the shape the upstream producer must supply for every
// device sample: a pointer-space position, an optional raw pressure, a
// device type hint, and a timestamp. It mirrors the browser PointerEvent
// fields the original producer exposes, so it decodes directly from JSON.
type RawPointerEvent struct {
	Kind        EventKind   `json:"-"`
	KindName    string      `json:"kind"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Pressure    float64     `json:"pressure"`
	PointerType string      `json:"pointerType"`
	Buttons     *ButtonMask `json:"buttons,omitempty"`
	TiltX       *float64    `json:"tiltX,omitempty"`
	TiltY       *float64    `json:"tiltY,omitempty"`
	TimeMs      float64     `json:"timeMs"`
}

// ResolveKind fills Kind from KindName when the event arrived over the
// wire. Unknown names map to KindCancel so a malformed stream still tears
// the stroke down.
func (r *RawPointerEvent) ResolveKind() {
	switch r.KindName {
	case "start":
		r.Kind = KindStart
	case "move":
		r.Kind = KindMove
	case "end":
		r.Kind = KindEnd
	default:
		r.Kind = KindCancel
	}
}
