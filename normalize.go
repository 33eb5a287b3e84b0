package ink

// fallbackPressureValue is what the normalizer substitutes for a raw
// pressure of exactly zero. Mice and other non-pressure devices report 0,
// and a zero-pressure point would render invisibly; half pressure keeps it
// present. The correction stage's fallback is configurable separately.
const fallbackPressureValue = 0.5

// deviceClassFor maps a raw pointer-type hint onto a DeviceClass.
// The hint strings follow the browser PointerEvent convention; anything
// unrecognized is treated as a mouse. Platform-specific detection
// heuristics belong here, not in the correction math.
func deviceClassFor(pointerType string) DeviceClass {
	switch pointerType {
	case "pen":
		return DevicePen
	case "touch":
		return DeviceTouch
	default:
		return DeviceMouse
	}
}

// normalizePressure clamps a raw pressure reading into [0, 1] and
// substitutes the fallback for an exact zero.
func normalizePressure(raw float64) float64 {
	p := clamp(raw, 0, 1)
	if p == 0 {
		return fallbackPressureValue
	}
	return p
}

// Normalize turns a raw device sample into a canonical Event: the position
// is projected into canvas space through the supplied transform, pressure
// is normalized, and the device class is resolved from the pointer-type
// hint. Tilt is carried over only when the producer defined both axes and
// they are not trivially zero, so mouse and touch events are not polluted
// with meaningless tilt pairs.
//
// Normalize is a pure function of its inputs; it keeps no state across
// calls. The caller assigns the stroke ID.
func Normalize(raw RawPointerEvent, ct *CoordinateTransform) Event {
	pos := ct.PointerToCanvas(Point{X: raw.X, Y: raw.Y})

	ev := Event{
		Kind:   raw.Kind,
		Device: deviceClassFor(raw.PointerType),
		Sample: Sample{
			X:        pos.X,
			Y:        pos.Y,
			Pressure: normalizePressure(raw.Pressure),
			TimeMs:   raw.TimeMs,
		},
		Buttons: raw.Buttons,
	}

	if raw.TiltX != nil && raw.TiltY != nil && (*raw.TiltX != 0 || *raw.TiltY != 0) {
		ev.Tilt = &Tilt{X: *raw.TiltX, Y: *raw.TiltY}
	}

	return ev
}
