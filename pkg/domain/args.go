package domain

// Args holds the resolved values of a step's params, in declaration order.
// A missing marker or measurement resolves to nil; the step decides whether
// that is fatal.
type Args []any

// Marker returns the trajectory at i, or false when it is absent.
func (a Args) Marker(i int) (Trajectory, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	t, ok := a[i].(Trajectory)
	return t, ok && t != nil
}

// Measurement returns the scalar at i, or false when it is absent.
func (a Args) Measurement(i int) (float64, bool) {
	if i < 0 || i >= len(a) {
		return 0, false
	}
	v, ok := a[i].(float64)
	return v, ok
}

// MeasurementOr returns the scalar at i, or fallback when it is absent.
func (a Args) MeasurementOr(i int, fallback float64) float64 {
	if v, ok := a.Measurement(i); ok {
		return v
	}
	return fallback
}

// Axis returns the axis column at i, or nil.
func (a Args) Axis(i int) AxisSeries {
	if i < 0 || i >= len(a) {
		return nil
	}
	s, _ := a[i].(AxisSeries)
	return s
}

// Angle returns the angle column at i, or nil.
func (a Args) Angle(i int) AngleSeries {
	if i < 0 || i >= len(a) {
		return nil
	}
	s, _ := a[i].(AngleSeries)
	return s
}

// Constant returns the raw value at i.
func (a Args) Constant(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Frames returns the length of the first series argument, or 0.
func (a Args) Frames() int {
	for _, v := range a {
		if s, ok := v.(Series); ok && s.Frames() > 0 {
			return s.Frames()
		}
	}
	return 0
}
