package registry

import "github.com/aretw0/gaitcgm/pkg/domain"

// span is the half-open range of a step's outputs in the flat key list.
type span struct {
	start, end int
}

// table is one namespace's ordered steps plus everything derived from them.
// A table is never modified after newTable returns.
type table struct {
	ns    domain.Namespace
	steps []domain.Step
	index map[string]int
	keys  []string
	spans []span
	owner map[string]string
}

func emptyTable(ns domain.Namespace) *table {
	return &table{
		ns:    ns,
		index: map[string]int{},
		owner: map[string]string{},
	}
}

func newTable(ns domain.Namespace, steps []domain.Step) (*table, error) {
	t := &table{
		ns:    ns,
		steps: steps,
		index: make(map[string]int, len(steps)),
		spans: make([]span, len(steps)),
		owner: make(map[string]string),
	}
	for i, s := range steps {
		if _, dup := t.index[s.Name]; dup {
			return nil, &domain.DuplicateStepError{Name: s.Name}
		}
		if len(s.Outputs) == 0 {
			return nil, &domain.MissingReturnDeclarationError{Step: s.Name}
		}
		t.index[s.Name] = i
		start := len(t.keys)
		for _, out := range s.Outputs {
			if prev, dup := t.owner[out]; dup {
				return nil, &domain.DuplicateOutputError{Namespace: ns, Output: out, Step: s.Name, Owner: prev}
			}
			t.owner[out] = s.Name
			t.keys = append(t.keys, out)
		}
		t.spans[i] = span{start: start, end: len(t.keys)}
	}
	return t, nil
}

func (t *table) stepsCopy() []domain.Step {
	out := make([]domain.Step, len(t.steps), len(t.steps)+1)
	copy(out, t.steps)
	return out
}

// positionForSlot maps an output slot to a step insertion position.
func (t *table) positionForSlot(slot int) int {
	slot = max(0, min(slot, len(t.keys)))
	for j, sp := range t.spans {
		if slot <= sp.start {
			return j
		}
		if slot < sp.end {
			return j + 1
		}
	}
	return len(t.steps)
}
