package domain

import "fmt"

// ParamKind tags what a step parameter refers to.
type ParamKind int

const (
	// KindConstant is passed to the step unchanged.
	KindConstant ParamKind = iota
	// KindMeasurement resolves to a subject-level scalar.
	KindMeasurement
	// KindMarker resolves to a whole-trial marker trajectory.
	KindMarker
	// KindAxis resolves to an axis column of the trial buffer.
	KindAxis
	// KindAngle resolves to an angle column of the trial buffer.
	KindAngle
)

func (k ParamKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindMeasurement:
		return "measurement"
	case KindMarker:
		return "marker"
	case KindAxis:
		return "axis"
	case KindAngle:
		return "angle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseParamKind converts a kind name as written in configuration files.
func ParseParamKind(s string) (ParamKind, error) {
	switch s {
	case "constant", "const":
		return KindConstant, nil
	case "measurement":
		return KindMeasurement, nil
	case "marker":
		return KindMarker, nil
	case "axis":
		return KindAxis, nil
	case "angle":
		return KindAngle, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", s)
	}
}

// Param is a symbolic reference bound to concrete trial data before execution.
type Param struct {
	Kind ParamKind
	Name string
	// Value holds the literal for KindConstant params.
	Value any
}

// Measurement references a subject measurement by name.
func Measurement(name string) Param { return Param{Kind: KindMeasurement, Name: name} }

// Marker references a marker trajectory by name.
func Marker(name string) Param { return Param{Kind: KindMarker, Name: name} }

// Axis references an axis output by name.
func Axis(name string) Param { return Param{Kind: KindAxis, Name: name} }

// Angle references an angle output by name.
func Angle(name string) Param { return Param{Kind: KindAngle, Name: name} }

// Constant wraps a literal value.
func Constant(v any) Param { return Param{Kind: KindConstant, Value: v} }

func (p Param) String() string {
	if p.Kind == KindConstant {
		return fmt.Sprintf("constant:%v", p.Value)
	}
	return p.Kind.String() + ":" + p.Name
}

// CloneParams returns a copy of params that shares no backing array.
func CloneParams(params []Param) []Param {
	if params == nil {
		return nil
	}
	out := make([]Param, len(params))
	copy(out, params)
	return out
}
