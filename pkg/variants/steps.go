package variants

import (
	"fmt"

	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
	"gonum.org/v1/gonum/spatial/r3"
)

// StepEyeAxis is the name of the inserted eye step.
const StepEyeAxis = "calc_axis_eye"

// eyeSpacing is half the interpupillary distance in millimetres.
const eyeSpacing = 32.0

// CustomPelvisParams is the param list of the custom pelvis step.
func CustomPelvisParams() []domain.Param {
	return dsl.Step(calc.StepPelvisAxis).
		Measurement("Bodymass", "ImaginaryMeasurement").
		Marker("RASI", "LASI", "RPSI", "LPSI", "SACR").
		Params()
}

// CustomPelvisAxis computes the builtin pelvis frame and lifts its origin
// along the pelvis z axis by ImaginaryMeasurement, defaulting to 0.
//
// Params: Bodymass, ImaginaryMeasurement; RASI, LASI, RPSI, LPSI, SACR markers.
func CustomPelvisAxis(a domain.Args) ([]domain.Series, error) {
	if len(a) < 7 {
		return nil, fmt.Errorf("custom pelvis expects 7 params, got %d", len(a))
	}
	out, err := calc.PelvisAxis(a[2:])
	if err != nil {
		return nil, err
	}
	lift := a.MeasurementOr(1, 0)
	if lift == 0 {
		return out, nil
	}
	pelvis := out[0].(domain.AxisSeries)
	for f, t := range pelvis {
		pelvis[f] = t.WithOrigin(r3.Add(t.Origin(), r3.Scale(lift, t.Basis(2))))
	}
	return out, nil
}

// EyeAxisSpec declares the eye step without an implementation; the registry
// binds it through the eye-axis variant.
func EyeAxisSpec() domain.StepSpec {
	return dsl.Step(StepEyeAxis).
		Measurement("Bodymass", "HeadOffset").
		Marker("RFHD", "LFHD", "RBHD", "LBHD").
		Axis("Head").
		ReturnsAxes("REye", "LEye").
		Spec()
}

// EyeAxes places one frame per eye ahead of the head origin, oriented with
// the head. HeadOffset pushes both eyes further forward.
//
// Params: Bodymass, HeadOffset; RFHD, LFHD, RBHD, LBHD markers; Head axis.
func EyeAxes(a domain.Args) ([]domain.Series, error) {
	head := a.Axis(6)
	if head == nil {
		return nil, fmt.Errorf("%w: axis Head", calc.ErrMissingInput)
	}
	forward := a.MeasurementOr(1, 0)
	right := make(domain.AxisSeries, len(head))
	left := make(domain.AxisSeries, len(head))
	for f, h := range head {
		base := r3.Add(h.Origin(), r3.Scale(forward, h.Basis(0)))
		right[f] = h.WithOrigin(r3.Sub(base, r3.Scale(eyeSpacing, h.Basis(1))))
		left[f] = h.WithOrigin(r3.Add(base, r3.Scale(eyeSpacing, h.Basis(1))))
	}
	return domain.Axes(right, left), nil
}

// MarkerOrigin places a frame aligned with the laboratory at the first marker
// param. It is useful for exposing a marker as a virtual axis.
func MarkerOrigin(a domain.Args) ([]domain.Series, error) {
	m, ok := a.Marker(0)
	if !ok {
		return nil, fmt.Errorf("%w: marker param 0", calc.ErrMissingInput)
	}
	out := make(domain.AxisSeries, len(m))
	for f, p := range m {
		out[f] = calc.Identity.WithOrigin(p)
	}
	return domain.Axes(out), nil
}

var extensions = map[string]domain.Func{
	"custom_pelvis_axis": CustomPelvisAxis,
	"eye_axes":           EyeAxes,
	"marker_origin":      MarkerOrigin,
}

// Extension returns a named step implementation for configuration-driven
// inserts and appends.
func Extension(name string) (domain.Func, bool) {
	fn, ok := extensions[name]
	return fn, ok
}
