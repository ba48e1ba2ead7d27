package runtime_test

import (
	"testing"

	"github.com/aretw0/gaitcgm/internal/runtime"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"github.com/aretw0/gaitcgm/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	data, trial := fixture(t)
	buf := schema.Schema{AxisKeys: []string{"Pelvis"}, AngleKeys: []string{"Hip"}}.Build(trial.Frames())

	pelvis, _ := buf.Axis("Pelvis")
	hip, _ := buf.Angle("Hip")
	marker, _ := trial.Marker("M")

	tests := []struct {
		name  string
		param domain.Param
		want  any
	}{
		{"measurement", domain.Measurement("Scale"), 10.0},
		{"missing measurement", domain.Measurement("Nope"), nil},
		{"marker", domain.Marker("M"), marker},
		{"missing marker", domain.Marker("Nope"), nil},
		{"axis", domain.Axis("Pelvis"), pelvis},
		{"missing axis", domain.Axis("Nope"), nil},
		{"angle", domain.Angle("Hip"), hip},
		{"constant", domain.Constant("deg"), "deg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runtime.Resolve(tt.param, data, trial, buf)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_AxisAliasesBuffer(t *testing.T) {
	data, trial := fixture(t)
	buf := schema.Schema{AxisKeys: []string{"Pelvis"}}.Build(trial.Frames())

	args := runtime.ResolveAll([]domain.Param{domain.Axis("Pelvis")}, data, trial, buf)
	col, _ := buf.Axis("Pelvis")
	col[2] = domain.Identity()

	assert.Equal(t, domain.Identity(), args.Axis(0)[2])
}

func TestBind_OverrideIsolation(t *testing.T) {
	data, trial := fixture(t)
	reg := registry.New()
	require.NoError(t, reg.RegisterDefaults(calc.Defaults()))

	before := reg.Snapshot()
	buf := schema.FromPlan(before).Build(trial.Frames())
	boundBefore := runtime.Bind(before, data, trial, buf)

	require.NoError(t, reg.Override(calc.StepHipJointCenter, []domain.Param{
		domain.Axis("Pelvis"), domain.Marker("M"), domain.Marker("M"), domain.Measurement("Scale"),
	}))
	after := reg.Snapshot()
	boundAfter := runtime.Bind(after, data, trial, buf)

	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		for _, s := range after.Steps(ns) {
			a, ok := boundBefore.Args(before, s.Name)
			require.True(t, ok, s.Name)
			b, ok := boundAfter.Args(after, s.Name)
			require.True(t, ok, s.Name)
			if s.Name == calc.StepHipJointCenter {
				assert.NotEqual(t, a, b)
				assert.Equal(t, 10.0, b[3])
				continue
			}
			assert.Equal(t, a, b, s.Name)
		}
	}
}
