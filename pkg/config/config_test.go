package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/gaitcgm/pkg/config"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
name: subject-01
variant: eye-axis
overrides:
  - step: calc_axis_pelvis
    params:
      - {kind: marker, name: RASI}
      - {kind: marker, name: LASI}
      - {kind: const, value: 3}
inserts:
  - name: calc_axis_virtual
    impl: marker_origin
    anchor: calc_axis_head
    offset: 1
    params: [{kind: marker, name: LFHD}]
    returns_axes: [Virtual]
appends:
  - name: calc_angle_extra
    returns_angles: [Extra]
`

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "subject-01", cfg.Name)
	assert.Equal(t, "eye-axis", cfg.Variant)
	require.Len(t, cfg.Overrides, 1)
	assert.Equal(t, "calc_axis_pelvis", cfg.Overrides[0].Step)

	params, err := config.Params(cfg.Overrides[0].Params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Param{domain.Marker("RASI"), domain.Marker("LASI"), domain.Constant(3)}, params)

	require.Len(t, cfg.Inserts, 1)
	assert.Equal(t, 1, cfg.Inserts[0].Offset)
	assert.Equal(t, []string{"Virtual"}, cfg.Inserts[0].ReturnsAxes)
	require.Len(t, cfg.Appends, 1)
	assert.Equal(t, []string{"Extra"}, cfg.Appends[0].ReturnsAngles)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	body := `{"name": "s", "overrides": [{"step": "calc_axis_hip", "params": [{"kind": "axis", "name": "Pelvis"}], "outputs": ["Hip2"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hip2"}, cfg.Overrides[0].Outputs)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("name: x\nunknown_key: 1\n"), ".yaml")
	assert.Error(t, err, "unknown keys are rejected")

	_, err = config.Parse([]byte("{not json"), ".json")
	assert.Error(t, err)
}

func TestParamConfig(t *testing.T) {
	_, err := config.ParamConfig{Kind: "volume", Name: "x"}.Param()
	assert.Error(t, err)

	_, err = config.ParamConfig{Kind: "marker"}.Param()
	assert.Error(t, err)
}

func TestStepConfig_Spec(t *testing.T) {
	fn := func(domain.Args) ([]domain.Series, error) { return nil, nil }
	lookup := func(name string) (domain.Func, bool) {
		if name == "known" {
			return fn, true
		}
		return nil, false
	}

	spec, err := config.StepConfig{Name: "s", Impl: "known", ReturnsAxes: []string{"A"}}.Spec(lookup)
	require.NoError(t, err)
	assert.NotNil(t, spec.Func)
	assert.Equal(t, []string{"A"}, spec.ReturnsAxes)

	spec, err = config.StepConfig{Name: "s", ReturnsAxes: []string{"A"}}.Spec(lookup)
	require.NoError(t, err)
	assert.Nil(t, spec.Func)

	_, err = config.StepConfig{Name: "s", Impl: "unknown"}.Spec(lookup)
	assert.Error(t, err)

	_, err = config.StepConfig{}.Spec(lookup)
	assert.Error(t, err)
}
