package schema

import (
	"slices"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Schema is the ordered set of output columns of a model.
type Schema struct {
	AxisKeys  []string
	AngleKeys []string
}

// FromPlan reads the flat output-key lists of both namespaces.
func FromPlan(p *registry.Plan) Schema {
	return Schema{
		AxisKeys:  p.Keys(domain.NamespaceAxis),
		AngleKeys: p.Keys(domain.NamespaceAngle),
	}
}

// Equal reports whether two schemas describe the same columns in the same order.
func (s Schema) Equal(o Schema) bool {
	return slices.Equal(s.AxisKeys, o.AxisKeys) && slices.Equal(s.AngleKeys, o.AngleKeys)
}

// Columns returns the total number of columns.
func (s Schema) Columns() int {
	return len(s.AxisKeys) + len(s.AngleKeys)
}

// Build creates a zero-filled buffer with frames rows per column.
func (s Schema) Build(frames int) *TrialBuffer {
	b := &TrialBuffer{
		schema:     Schema{AxisKeys: slices.Clone(s.AxisKeys), AngleKeys: slices.Clone(s.AngleKeys)},
		frames:     frames,
		axisArena:  make([]domain.Transform, frames*len(s.AxisKeys)),
		angleArena: make([]r3.Vec, frames*len(s.AngleKeys)),
		axes:       make(map[string]domain.AxisSeries, len(s.AxisKeys)),
		angles:     make(map[string]domain.AngleSeries, len(s.AngleKeys)),
	}
	for i, k := range s.AxisKeys {
		lo, hi := i*frames, (i+1)*frames
		b.axes[k] = domain.AxisSeries(b.axisArena[lo:hi:hi])
	}
	for i, k := range s.AngleKeys {
		lo, hi := i*frames, (i+1)*frames
		b.angles[k] = domain.AngleSeries(b.angleArena[lo:hi:hi])
	}
	return b
}

// BuildAll builds one buffer per trial.
func BuildAll(s Schema, frames map[string]int) map[string]*TrialBuffer {
	out := make(map[string]*TrialBuffer, len(frames))
	for trial, n := range frames {
		out[trial] = s.Build(n)
	}
	return out
}
