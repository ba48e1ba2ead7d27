package gaitcgm_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/validator"
	"github.com/aretw0/gaitcgm/pkg/adapters/synthetic"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/config"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
	"github.com/aretw0/gaitcgm/pkg/variants"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func walkerData(t *testing.T, opts ...synthetic.Option) *dataset.Dataset {
	t.Helper()
	w := synthetic.New(append([]synthetic.Option{synthetic.WithFrames(30)}, opts...)...)
	data, err := dataset.Build("S01", w, w)
	require.NoError(t, err)
	return data
}

func midHip(args domain.Args) ([]domain.Series, error) {
	r, l := args.Axis(0), args.Axis(1)
	out := make(domain.AxisSeries, len(r))
	for f := range out {
		o := r3.Scale(0.5, r3.Add(r[f].Origin(), l[f].Origin()))
		out[f] = r[f].WithOrigin(o)
	}
	return domain.Axes(out), nil
}

func TestModel_RunDefaults(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)
	assert.Equal(t, "S01", m.Name)
	require.NoError(t, m.Validate())

	results, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.Equal(t, "S01", res.Model)
		assert.Empty(t, validator.Result(res, 1e-6), res.Trial)
		for _, name := range res.AngleKeys {
			for f, v := range res.Angles[name] {
				require.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z), "%s %s[%d] is NaN", res.Trial, name, f)
			}
		}
		buf, ok := m.Buffer(res.Trial)
		require.True(t, ok)
		assert.True(t, buf.Valid())
	}

	r, ok := m.Result("walk_02")
	require.True(t, ok)
	assert.Equal(t, 40, r.Frames)
	assert.Len(t, m.Results(), 2)
}

func TestModel_InsertIntoJointCenterSpan(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)

	spec := dsl.Step("calc_axis_mid_hip").Axis("RHipJC", "LHipJC").ReturnsAxes("MidHip").Do(midHip).Spec()
	require.NoError(t, m.Insert(spec, calc.StepHipJointCenter, 1))

	assert.Equal(t, []string{"Pelvis", "RHipJC", "LHipJC", "MidHip", "Hip"}, m.Schema().AxisKeys[:5])
	buf, _ := m.Buffer("walk_01")
	_, ok := buf.Axis("MidHip")
	assert.True(t, ok, "buffers are rebuilt for the new schema")

	results, err := m.Run(context.Background())
	require.NoError(t, err)
	res := results[0]
	want := r3.Scale(0.5, r3.Add(res.Axes["RHipJC"][3].Origin(), res.Axes["LHipJC"][3].Origin()))
	assert.Equal(t, want, res.Axes["MidHip"][3].Origin())
	assert.Equal(t, res.Axes["Hip"][3].Origin(), res.Axes["MidHip"][3].Origin())
}

func TestModel_MutationDiscardsResults(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Results(), 2)

	require.NoError(t, m.Append(dsl.Step("calc_angle_pelvis_copy").Axis("Pelvis").
		ReturnsAngles("PelvisCopy").Do(calc.RelativeAngles(calc.Pair{Parent: calc.Global, Child: 0})).Spec()))

	assert.Empty(t, m.Results())
	buf, _ := m.Buffer("walk_01")
	assert.False(t, buf.Valid())
}

func TestModel_OverrideInvalidatesBuffers(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.NoError(t, err)
	schemaBefore := m.Schema()

	require.NoError(t, m.Override(calc.StepPelvisAxis, []domain.Param{
		domain.Marker("RASI"), domain.Marker("LASI"), domain.Marker("RPSI"), domain.Marker("LPSI"), domain.Marker("SACR"),
	}))

	assert.Equal(t, schemaBefore, m.Schema(), "same outputs keep the schema")
	for _, trial := range []string{"walk_01", "walk_02"} {
		buf, ok := m.Buffer(trial)
		require.True(t, ok)
		assert.False(t, buf.Valid(), trial)
		_, ok = m.Result(trial)
		assert.False(t, ok, trial)
	}
}

func TestModel_OverrideIsolation(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)

	before := map[string]domain.Args{}
	plan := m.Plan()
	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		for _, s := range plan.Steps(ns) {
			args, ok := m.ResolvedArgs("walk_01", s.Name)
			require.True(t, ok)
			before[s.Name] = args
		}
	}

	require.NoError(t, m.Override(calc.StepKneeAxis, []domain.Param{
		domain.Marker("LTHI"), domain.Marker("RTHI"), domain.Marker("LKNE"), domain.Marker("RKNE"),
		domain.Axis("LHipJC"), domain.Axis("RHipJC"),
		domain.Measurement("LeftKneeWidth"), domain.Measurement("RightKneeWidth"),
	}))

	for name, old := range before {
		cur, ok := m.ResolvedArgs("walk_01", name)
		require.True(t, ok, name)
		if name == calc.StepKneeAxis {
			assert.NotEqual(t, old, cur)
			continue
		}
		assert.Equal(t, old, cur, name)
	}
}

func TestModel_RerunIsBitIdentical(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)

	first, err := m.Run(context.Background())
	require.NoError(t, err)
	second, err := m.Run(context.Background())
	require.NoError(t, err)

	for i := range first {
		if diff := cmp.Diff(first[i].Axes, second[i].Axes); diff != "" {
			t.Errorf("axes differ between runs (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(first[i].Angles, second[i].Angles); diff != "" {
			t.Errorf("angles differ between runs (-first +second):\n%s", diff)
		}
	}
}

func TestModel_MissingOptionalMarker(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t, synthetic.WithoutMarkers("SACR")))
	require.NoError(t, err)

	args, ok := m.ResolvedArgs("walk_01", calc.StepPelvisAxis)
	require.True(t, ok)
	assert.Nil(t, args[4])

	_, err = m.Run(context.Background())
	assert.NoError(t, err)
}

func TestModel_MissingRequiredMarker(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t, synthetic.WithoutMarkers("RASI")))
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	require.Error(t, err)

	var stepErr *domain.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, calc.StepPelvisAxis, stepErr.Step)
	assert.ErrorIs(t, err, calc.ErrMissingInput)

	_, ok := m.Result("walk_01")
	assert.False(t, ok)
	buf, _ := m.Buffer("walk_01")
	assert.False(t, buf.Valid())
}

func TestModel_MutationDuringRunFails(t *testing.T) {
	var m *gaitcgm.Model
	var mutationErr error
	hooks := domain.LifecycleHooks{
		OnStepStart: func(_ context.Context, e *domain.StepEvent) {
			if e.Step == calc.StepPelvisAxis && mutationErr == nil {
				mutationErr = m.Append(dsl.Step("late").ReturnsAxes("Late").Do(midHip).Spec())
			}
		},
	}
	var err error
	m, err = gaitcgm.New(walkerData(t), gaitcgm.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, mutationErr, domain.ErrRunInProgress)

	_, found := m.Registry().Lookup("late")
	assert.False(t, found)
}

func TestModel_RegistryMutationPickedUpByRun(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t))
	require.NoError(t, err)

	require.NoError(t, m.Registry().Append(dsl.Step("calc_axis_mid_hip").Axis("RHipJC", "LHipJC").ReturnsAxes("MidHip").Do(midHip).Spec()))

	results, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, results[0].AxisKeys, "MidHip")
	assert.Len(t, results[0].Axes["MidHip"], 30)
}

func TestModel_EyeAxisProfile(t *testing.T) {
	m, err := gaitcgm.New(walkerData(t), gaitcgm.WithProfile(variants.EyeAxis))
	require.NoError(t, err)
	assert.Equal(t, "eye-axis", m.Registry().Variant())

	results, err := m.Run(context.Background())
	require.NoError(t, err)

	res := results[0]
	head := res.Axes["Head"][0]
	eye := res.Axes["REye"][0]
	assert.InDelta(t, 20, r3.Dot(r3.Sub(eye.Origin(), head.Origin()), head.Basis(0)), 1e-9)
}

func TestModel_CustomPelvisProfile(t *testing.T) {
	data := walkerData(t)
	plain, err := gaitcgm.New(data)
	require.NoError(t, err)
	custom, err := gaitcgm.New(data, gaitcgm.WithName("custom"), gaitcgm.WithProfile(variants.CustomPelvis))
	require.NoError(t, err)

	a, err := plain.Run(context.Background())
	require.NoError(t, err)
	b, err := custom.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a[0].Axes["Pelvis"], b[0].Axes["Pelvis"], "no ImaginaryMeasurement means no lift")
	args, _ := custom.ResolvedArgs("walk_01", calc.StepPelvisAxis)
	assert.Equal(t, 72.0, args[0])
}

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
name: configured
variant: eye-axis
inserts:
  - name: calc_axis_virtual_lfhd
    impl: marker_origin
    anchor: calc_axis_head
    offset: 0
    params: [{kind: marker, name: LFHD}]
    returns_axes: [VirtualLFHD]
appends:
  - name: calc_angle_virtual
    impl: relative_missing
    returns_angles: [Virtual]
`), ".yaml")
	require.NoError(t, err)

	_, err = gaitcgm.NewFromConfig(walkerData(t), cfg)
	assert.Error(t, err, "unknown implementation")

	cfg.Appends = nil
	m, err := gaitcgm.NewFromConfig(walkerData(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, "configured", m.Name)

	keys := m.Schema().AxisKeys
	head, virtual, eye := -1, -1, -1
	for i, k := range keys {
		switch k {
		case "Head":
			head = i
		case "VirtualLFHD":
			virtual = i
		case "REye":
			eye = i
		}
	}
	assert.Equal(t, head-1, virtual)
	assert.Equal(t, head+1, eye)

	_, err = m.Run(context.Background())
	require.NoError(t, err)

	_, err = gaitcgm.NewFromConfig(walkerData(t), &config.ModelConfig{Variant: "unknown"})
	assert.Error(t, err)
}
