package domain

// Result is the read-only snapshot of one trial after a successful run.
// It owns copies of its data; later runs never modify it.
type Result struct {
	Model        string
	Trial        string
	Frames       int
	Markers      map[string]Trajectory
	Axes         map[string]AxisSeries
	Angles       map[string]AngleSeries
	Measurements map[string]float64
	AxisKeys     []string
	AngleKeys    []string
}

// Clone returns a deep copy of r.
func (r *Result) Clone() *Result {
	out := *r
	out.Markers = cloneMap(r.Markers)
	out.Axes = cloneMap(r.Axes)
	out.Angles = cloneMap(r.Angles)
	if r.Measurements != nil {
		out.Measurements = make(map[string]float64, len(r.Measurements))
		for k, v := range r.Measurements {
			out.Measurements[k] = v
		}
	}
	out.AxisKeys = append([]string(nil), r.AxisKeys...)
	out.AngleKeys = append([]string(nil), r.AngleKeys...)
	return &out
}

func cloneMap[S ~[]E, E any](in map[string]S) map[string]S {
	if in == nil {
		return nil
	}
	out := make(map[string]S, len(in))
	for k, v := range in {
		out[k] = append(S(nil), v...)
	}
	return out
}
