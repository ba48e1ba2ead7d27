package registry

import "github.com/aretw0/gaitcgm/pkg/domain"

// Plan is an immutable snapshot of a registry, used for one or more runs.
type Plan struct {
	Version uint64
	Variant string
	axis    *table
	angle   *table
}

func (p *Plan) table(ns domain.Namespace) *table {
	if ns == domain.NamespaceAngle {
		return p.angle
	}
	return p.axis
}

// Steps returns the ordered steps of ns. Callers must not modify the result.
func (p *Plan) Steps(ns domain.Namespace) []domain.Step {
	return p.table(ns).steps
}

// Keys returns the flat, ordered output names of ns.
func (p *Plan) Keys(ns domain.Namespace) []string {
	return append([]string(nil), p.table(ns).keys...)
}

// Index returns the execution position of a step within ns.
func (p *Plan) Index(ns domain.Namespace, name string) (int, bool) {
	i, ok := p.table(ns).index[name]
	return i, ok
}

// Len returns the number of steps in ns.
func (p *Plan) Len(ns domain.Namespace) int {
	return len(p.table(ns).steps)
}

// Producer returns the step that declares output in ns.
func (p *Plan) Producer(ns domain.Namespace, output string) (string, bool) {
	s, ok := p.table(ns).owner[output]
	return s, ok
}

// Step finds a step by name in either namespace.
func (p *Plan) Step(name string) (domain.Step, bool) {
	for _, t := range []*table{p.axis, p.angle} {
		if i, ok := t.index[name]; ok {
			return t.steps[i], true
		}
	}
	return domain.Step{}, false
}
