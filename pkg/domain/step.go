package domain

// Namespace separates axis-producing steps from angle-producing steps.
// Output names only need to be unique within one namespace.
type Namespace string

const (
	NamespaceAxis  Namespace = "axis"
	NamespaceAngle Namespace = "angle"
)

// Func computes a step over a whole trial. It returns one Series per declared
// output, in declaration order: AxisSeries for axis steps, AngleSeries for
// angle steps.
type Func func(args Args) ([]Series, error)

// Step is one named unit of the calculation pipeline.
type Step struct {
	Name      string
	Namespace Namespace
	Params    []Param
	Outputs   []string
	Func      Func
}

// Clone returns a copy of s whose slices can be modified independently.
func (s Step) Clone() Step {
	c := s
	c.Params = CloneParams(s.Params)
	c.Outputs = append([]string(nil), s.Outputs...)
	return c
}

// StepSpec declares a custom step. Its namespace is derived from which return
// list is set; declaring both or neither is rejected by Compile.
type StepSpec struct {
	Name          string
	Params        []Param
	ReturnsAxes   []string
	ReturnsAngles []string
	// Func may be nil, in which case the registry binds the implementation by name.
	Func Func
}

// Compile validates the return declarations and produces a Step.
func (s StepSpec) Compile() (Step, error) {
	switch {
	case len(s.ReturnsAxes) > 0 && len(s.ReturnsAngles) > 0:
		return Step{}, &ConflictingReturnKindError{Step: s.Name}
	case len(s.ReturnsAxes) > 0:
		return Step{
			Name:      s.Name,
			Namespace: NamespaceAxis,
			Params:    CloneParams(s.Params),
			Outputs:   append([]string(nil), s.ReturnsAxes...),
			Func:      s.Func,
		}, nil
	case len(s.ReturnsAngles) > 0:
		return Step{
			Name:      s.Name,
			Namespace: NamespaceAngle,
			Params:    CloneParams(s.Params),
			Outputs:   append([]string(nil), s.ReturnsAngles...),
			Func:      s.Func,
		}, nil
	default:
		return Step{}, &MissingReturnDeclarationError{Step: s.Name}
	}
}
