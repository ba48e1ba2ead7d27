package calc

import (
	"math"
	"testing"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func rotZ(deg float64) domain.Transform {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return domain.NewTransform(
		r3.Vec{X: c, Y: s},
		r3.Vec{X: -s, Y: c},
		r3.Vec{Z: 1},
		r3.Vec{},
	)
}

func TestRelativeAngles(t *testing.T) {
	tests := []struct {
		name   string
		pairs  []Pair
		args   domain.Args
		expect []r3.Vec
	}{
		{
			name:   "identical frames",
			pairs:  []Pair{{0, 1}},
			args:   domain.Args{domain.AxisSeries{rotZ(30)}, domain.AxisSeries{rotZ(30)}},
			expect: []r3.Vec{{}},
		},
		{
			name:   "global yaw",
			pairs:  []Pair{{Global, 0}},
			args:   domain.Args{domain.AxisSeries{rotZ(25)}},
			expect: []r3.Vec{{Z: 25}},
		},
		{
			name:   "two outputs",
			pairs:  []Pair{{0, 1}, {0, 2}},
			args:   domain.Args{domain.AxisSeries{Identity}, domain.AxisSeries{rotZ(10)}, domain.AxisSeries{Identity}},
			expect: []r3.Vec{{Z: 10}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RelativeAngles(tt.pairs...)(tt.args)
			require.NoError(t, err)
			require.Len(t, out, len(tt.expect))
			for i, want := range tt.expect {
				got := out[i].(domain.AngleSeries)[0]
				assert.InDelta(t, want.X, got.X, 1e-9)
				assert.InDelta(t, want.Y, got.Y, 1e-9)
				assert.InDelta(t, want.Z, got.Z, 1e-9)
			}
		})
	}
}

func TestRelativeAngles_MissingAxis(t *testing.T) {
	_, err := RelativeAngles(Pair{0, 1})(domain.Args{domain.AxisSeries{Identity}, nil})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestDefaults_UniqueNamesAndOutputs(t *testing.T) {
	steps := Defaults()
	require.Len(t, steps, 26)

	names := map[string]bool{}
	outputs := map[domain.Namespace]map[string]string{
		domain.NamespaceAxis:  {},
		domain.NamespaceAngle: {},
	}
	for _, s := range steps {
		assert.False(t, names[s.Name], "duplicate step %s", s.Name)
		names[s.Name] = true
		assert.NotNil(t, s.Func, s.Name)
		for _, o := range s.Outputs {
			owner, dup := outputs[s.Namespace][o]
			assert.False(t, dup, "%s output %s already produced by %s", s.Name, o, owner)
			outputs[s.Namespace][o] = s.Name
		}
	}
	assert.Len(t, outputs[domain.NamespaceAxis], 26)
	assert.Len(t, outputs[domain.NamespaceAngle], 19)
}
