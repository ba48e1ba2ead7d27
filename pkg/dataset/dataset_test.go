package dataset_test

import (
	"testing"

	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewTrial(t *testing.T) {
	t.Run("copies input", func(t *testing.T) {
		in := map[string]domain.Trajectory{"RASI": {{X: 1}, {X: 2}}}
		trial, err := dataset.NewTrial("walk", in)
		require.NoError(t, err)

		in["RASI"][0] = r3.Vec{X: 99}
		got, ok := trial.Marker("RASI")
		require.True(t, ok)
		assert.Equal(t, 1.0, got[0].X)
		assert.Equal(t, 2, trial.Frames())
	})

	t.Run("rejects unequal lengths", func(t *testing.T) {
		_, err := dataset.NewTrial("walk", map[string]domain.Trajectory{
			"A": {{}, {}},
			"B": {{}},
		})
		assert.Error(t, err)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := dataset.NewTrial("", nil)
		assert.Error(t, err)
	})

	t.Run("no markers", func(t *testing.T) {
		trial, err := dataset.NewTrial("static", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, trial.Frames())
	})
}

func TestDataset(t *testing.T) {
	a, err := dataset.NewTrial("a", map[string]domain.Trajectory{"X": make(domain.Trajectory, 3)})
	require.NoError(t, err)
	b, err := dataset.NewTrial("b", map[string]domain.Trajectory{"X": make(domain.Trajectory, 5)})
	require.NoError(t, err)

	d, err := dataset.New("S01", map[string]float64{"Bodymass": 72}, b, a)
	require.NoError(t, err)

	assert.Equal(t, "S01", d.Subject())
	assert.Equal(t, []string{"b", "a"}, d.TrialNames())
	assert.Equal(t, map[string]int{"a": 3, "b": 5}, d.FrameCounts())

	v, ok := d.Measurement("Bodymass")
	assert.True(t, ok)
	assert.Equal(t, 72.0, v)

	m := d.Measurements()
	m["Bodymass"] = 0
	v, _ = d.Measurement("Bodymass")
	assert.Equal(t, 72.0, v)

	_, err = d.Trial("c")
	assert.ErrorIs(t, err, domain.ErrUnknownTrial)

	_, err = dataset.New("S01", nil, a, a)
	assert.Error(t, err)
}
