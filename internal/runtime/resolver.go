package runtime

import (
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"github.com/aretw0/gaitcgm/pkg/schema"
)

// Resolve returns the whole-trial value of p. Absent measurements, markers
// and columns resolve to an untyped nil.
func Resolve(p domain.Param, data *dataset.Dataset, trial *dataset.Trial, buf *schema.TrialBuffer) any {
	switch p.Kind {
	case domain.KindMeasurement:
		if v, ok := data.Measurement(p.Name); ok {
			return v
		}
	case domain.KindMarker:
		if m, ok := trial.Marker(p.Name); ok {
			return m
		}
	case domain.KindAxis:
		if s, ok := buf.Axis(p.Name); ok {
			return s
		}
	case domain.KindAngle:
		if s, ok := buf.Angle(p.Name); ok {
			return s
		}
	case domain.KindConstant:
		return p.Value
	}
	return nil
}

// ResolveAll resolves a param list in order.
func ResolveAll(params []domain.Param, data *dataset.Dataset, trial *dataset.Trial, buf *schema.TrialBuffer) domain.Args {
	args := make(domain.Args, len(params))
	for i, p := range params {
		args[i] = Resolve(p, data, trial, buf)
	}
	return args
}

// Bound holds the resolved args of every step of a plan for one trial,
// indexed like Plan.Steps.
type Bound struct {
	Version uint64
	Axis    []domain.Args
	Angle   []domain.Args
}

// Bind resolves every step of plan against one trial.
func Bind(plan *registry.Plan, data *dataset.Dataset, trial *dataset.Trial, buf *schema.TrialBuffer) *Bound {
	b := &Bound{Version: plan.Version}
	for _, s := range plan.Steps(domain.NamespaceAxis) {
		b.Axis = append(b.Axis, ResolveAll(s.Params, data, trial, buf))
	}
	for _, s := range plan.Steps(domain.NamespaceAngle) {
		b.Angle = append(b.Angle, ResolveAll(s.Params, data, trial, buf))
	}
	return b
}

// Args returns the resolved args of a step by name.
func (b *Bound) Args(plan *registry.Plan, step string) (domain.Args, bool) {
	if i, ok := plan.Index(domain.NamespaceAxis, step); ok && i < len(b.Axis) {
		return b.Axis[i], true
	}
	if i, ok := plan.Index(domain.NamespaceAngle, step); ok && i < len(b.Angle) {
		return b.Angle[i], true
	}
	return nil, false
}

func (b *Bound) namespace(ns domain.Namespace) []domain.Args {
	if ns == domain.NamespaceAngle {
		return b.Angle
	}
	return b.Axis
}
