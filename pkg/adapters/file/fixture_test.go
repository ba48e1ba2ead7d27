package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/gaitcgm/pkg/adapters/file"
	"github.com/aretw0/gaitcgm/pkg/adapters/synthetic"
	"github.com/aretw0/gaitcgm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const fixtureYAML = `
subject: S07
measurements:
  Bodymass: 64.5
  MeanLegLength: 870
trials:
  - name: walk
    markers:
      RASI: [[0, -125, 1000], [10, -125, 1001]]
      LASI: [[0, 125, 1000], [10, 125, 1001]]
  - name: static
    markers:
      RASI: [[0, -125, 1000]]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	fx, err := file.Load(writeFile(t, "s07.yaml", fixtureYAML))
	require.NoError(t, err)

	assert.Equal(t, "S07", fx.Subject())
	names, _ := fx.TrialNames()
	assert.Equal(t, []string{"walk", "static"}, names)

	m, err := fx.Markers("walk")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 10, Y: 125, Z: 1001}, m["LASI"][1])

	ms, _ := fx.Measurements()
	assert.Equal(t, 64.5, ms["Bodymass"])
}

func TestLoad_Contract(t *testing.T) {
	fx, err := file.Load(writeFile(t, "s07.yml", fixtureYAML))
	require.NoError(t, err)
	ports.RunMarkerSourceContract(t, fx)
	ports.RunMeasurementSourceContract(t, fx)
}

func TestLoad_SubjectDefaultsToFileName(t *testing.T) {
	fx, err := file.Load(writeFile(t, "anon.json", `{"trials":[{"name":"t","markers":{"A":[[1,2,3]]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "anon", fx.Subject())
}

func TestLoad_Errors(t *testing.T) {
	_, err := file.Load(writeFile(t, "dup.yaml", "trials:\n  - name: a\n  - name: a\n"))
	assert.Error(t, err)

	_, err = file.Load(writeFile(t, "noname.yaml", "trials:\n  - markers: {}\n"))
	assert.Error(t, err)

	_, err = file.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWrite_ThenLoad(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			src := synthetic.New(synthetic.WithFrames(5))
			path := filepath.Join(t.TempDir(), "subject"+ext)
			require.NoError(t, file.Write(path, "synthetic", src))

			fx, err := file.Load(path)
			require.NoError(t, err)
			assert.Equal(t, "synthetic", fx.Subject())

			want, _ := src.Markers("walk_02")
			got, err := fx.Markers("walk_02")
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for name, traj := range want {
				require.Len(t, got[name], len(traj), name)
				for i := range traj {
					assert.InDelta(t, traj[i].X, got[name][i].X, 1e-9)
					assert.InDelta(t, traj[i].Z, got[name][i].Z, 1e-9)
				}
			}
		})
	}
}
