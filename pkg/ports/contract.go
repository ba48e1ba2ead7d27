package ports

import (
	"context"
	"testing"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMarkerSourceContract runs a suite of tests to verify that a MarkerSource
// implementation adheres to the defined interface contract. The source must
// expose at least one trial.
func RunMarkerSourceContract(t *testing.T, src MarkerSource) {
	t.Run("Trial names are stable", func(t *testing.T) {
		first, err := src.TrialNames()
		require.NoError(t, err)
		require.NotEmpty(t, first, "source must expose at least one trial")

		second, err := src.TrialNames()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Markers share a frame count", func(t *testing.T) {
		names, err := src.TrialNames()
		require.NoError(t, err)
		for _, trial := range names {
			markers, err := src.Markers(trial)
			require.NoError(t, err, trial)
			require.NotEmpty(t, markers, trial)

			frames := -1
			for name, traj := range markers {
				if frames < 0 {
					frames = len(traj)
				}
				assert.Len(t, traj, frames, "%s/%s", trial, name)
			}
		}
	})

	t.Run("Markers are not shared with the caller", func(t *testing.T) {
		names, err := src.TrialNames()
		require.NoError(t, err)
		trial := names[0]

		a, err := src.Markers(trial)
		require.NoError(t, err)
		for name, traj := range a {
			if len(traj) > 0 {
				traj[0].X += 12345
			}
			b, err := src.Markers(trial)
			require.NoError(t, err)
			if len(b[name]) > 0 {
				assert.NotEqual(t, traj[0], b[name][0], "mutation leaked into source")
			}
			break
		}
	})

	t.Run("Unknown trial", func(t *testing.T) {
		_, err := src.Markers("no-such-trial-exists")
		assert.ErrorIs(t, err, domain.ErrUnknownTrial)
	})
}

// RunMeasurementSourceContract verifies a MeasurementSource implementation.
func RunMeasurementSourceContract(t *testing.T, src MeasurementSource) {
	t.Run("Measurements are copies", func(t *testing.T) {
		a, err := src.Measurements()
		require.NoError(t, err)
		for k := range a {
			a[k] = -1e9
		}
		b, err := src.Measurements()
		require.NoError(t, err)
		for k, v := range b {
			assert.NotEqual(t, -1e9, v, k)
		}
	})
}

// RunResultStoreContract verifies the ResultStore contract against an empty store.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	res := &domain.Result{
		Model:        "S01",
		Trial:        "walk_01",
		Frames:       2,
		Markers:      map[string]domain.Trajectory{"RASI": {{X: 1}, {X: 2}}},
		Axes:         map[string]domain.AxisSeries{"Pelvis": {domain.Identity(), domain.Identity()}},
		Angles:       map[string]domain.AngleSeries{"Pelvis": {{Z: 3}, {Z: 4}}},
		Measurements: map[string]float64{"Bodymass": 72},
		AxisKeys:     []string{"Pelvis"},
		AngleKeys:    []string{"Pelvis"},
	}

	t.Run("Load missing result", func(t *testing.T) {
		_, err := store.Load(ctx, "S01", "walk_01")
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Save and load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, res))
		got, err := store.Load(ctx, "S01", "walk_01")
		require.NoError(t, err)
		assert.Equal(t, res, got)
	})

	t.Run("Stored copy is detached", func(t *testing.T) {
		got, err := store.Load(ctx, "S01", "walk_01")
		require.NoError(t, err)
		got.Angles["Pelvis"][0].Z = 99

		again, err := store.Load(ctx, "S01", "walk_01")
		require.NoError(t, err)
		assert.Equal(t, 3.0, again.Angles["Pelvis"][0].Z)
	})

	t.Run("List per model", func(t *testing.T) {
		other := res.Clone()
		other.Trial = "static"
		require.NoError(t, store.Save(ctx, other))
		foreign := res.Clone()
		foreign.Model = "S02"
		require.NoError(t, store.Save(ctx, foreign))

		trials, err := store.List(ctx, "S01")
		require.NoError(t, err)
		assert.Equal(t, []string{"static", "walk_01"}, trials)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "S01", "static"))
		require.NoError(t, store.Delete(ctx, "S01", "static"))
		_, err := store.Load(ctx, "S01", "static")
		assert.ErrorIs(t, err, domain.ErrResultNotFound)

		trials, err := store.List(ctx, "S01")
		require.NoError(t, err)
		assert.Equal(t, []string{"walk_01"}, trials)
	})
}
