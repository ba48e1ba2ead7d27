package dsl

import "github.com/aretw0/gaitcgm/pkg/domain"

// StepBuilder provides a fluent API for declaring a calculation step.
type StepBuilder struct {
	spec domain.StepSpec
}

// Step starts the declaration of a step called name.
func Step(name string) *StepBuilder {
	return &StepBuilder{spec: domain.StepSpec{Name: name}}
}

// Measurement appends subject measurement params.
func (b *StepBuilder) Measurement(names ...string) *StepBuilder {
	for _, n := range names {
		b.spec.Params = append(b.spec.Params, domain.Measurement(n))
	}
	return b
}

// Marker appends marker trajectory params.
func (b *StepBuilder) Marker(names ...string) *StepBuilder {
	for _, n := range names {
		b.spec.Params = append(b.spec.Params, domain.Marker(n))
	}
	return b
}

// Axis appends axis params, produced by earlier axis steps.
func (b *StepBuilder) Axis(names ...string) *StepBuilder {
	for _, n := range names {
		b.spec.Params = append(b.spec.Params, domain.Axis(n))
	}
	return b
}

// Angle appends angle params, produced by earlier angle steps.
func (b *StepBuilder) Angle(names ...string) *StepBuilder {
	for _, n := range names {
		b.spec.Params = append(b.spec.Params, domain.Angle(n))
	}
	return b
}

// Constant appends a literal param.
func (b *StepBuilder) Constant(v any) *StepBuilder {
	b.spec.Params = append(b.spec.Params, domain.Constant(v))
	return b
}

// ReturnsAxes declares the axis outputs, in the order Func returns them.
func (b *StepBuilder) ReturnsAxes(names ...string) *StepBuilder {
	b.spec.ReturnsAxes = append(b.spec.ReturnsAxes, names...)
	return b
}

// ReturnsAngles declares the angle outputs, in the order Func returns them.
func (b *StepBuilder) ReturnsAngles(names ...string) *StepBuilder {
	b.spec.ReturnsAngles = append(b.spec.ReturnsAngles, names...)
	return b
}

// Do sets the implementation.
func (b *StepBuilder) Do(fn domain.Func) *StepBuilder {
	b.spec.Func = fn
	return b
}

// Params returns a copy of the params declared so far.
func (b *StepBuilder) Params() []domain.Param {
	return domain.CloneParams(b.spec.Params)
}

// Spec returns the declaration for Insert or Append.
func (b *StepBuilder) Spec() domain.StepSpec {
	s := b.spec
	s.Params = domain.CloneParams(b.spec.Params)
	s.ReturnsAxes = append([]string(nil), b.spec.ReturnsAxes...)
	s.ReturnsAngles = append([]string(nil), b.spec.ReturnsAngles...)
	return s
}

// Build compiles the declaration into a builtin-ready Step.
func (b *StepBuilder) Build() (domain.Step, error) {
	return b.Spec().Compile()
}

// MustBuild is like Build but panics on an invalid declaration.
// It is intended for static builtin tables.
func (b *StepBuilder) MustBuild() domain.Step {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
