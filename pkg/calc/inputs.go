package calc

import (
	"errors"
	"fmt"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// ErrMissingInput is returned by a builtin step when an input it cannot do
// without resolved to nil.
var ErrMissingInput = errors.New("missing required input")

func needMarker(a domain.Args, i int, name string) (domain.Trajectory, error) {
	t, ok := a.Marker(i)
	if !ok {
		return nil, fmt.Errorf("%w: marker %s", ErrMissingInput, name)
	}
	return t, nil
}

func needMeasurement(a domain.Args, i int, name string) (float64, error) {
	v, ok := a.Measurement(i)
	if !ok {
		return 0, fmt.Errorf("%w: measurement %s", ErrMissingInput, name)
	}
	return v, nil
}

func needAxis(a domain.Args, i int, name string) (domain.AxisSeries, error) {
	s := a.Axis(i)
	if s == nil {
		return nil, fmt.Errorf("%w: axis %s", ErrMissingInput, name)
	}
	return s, nil
}

// markers fetches several required markers starting at param index from.
func markers(a domain.Args, from int, names ...string) ([]domain.Trajectory, error) {
	out := make([]domain.Trajectory, len(names))
	for i, n := range names {
		t, err := needMarker(a, from+i, n)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func axes(a domain.Args, from int, names ...string) ([]domain.AxisSeries, error) {
	out := make([]domain.AxisSeries, len(names))
	for i, n := range names {
		s, err := needAxis(a, from+i, n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
