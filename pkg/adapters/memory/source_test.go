package memory_test

import (
	"testing"

	"github.com/aretw0/gaitcgm/pkg/adapters/memory"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newSource() *memory.Source {
	return memory.New(map[string]float64{"Bodymass": 72}).
		AddTrial("walk", map[string]domain.Trajectory{
			"RASI": {{X: 1}, {X: 2}},
			"LASI": {{Y: 1}, {Y: 2}},
		}).
		AddTrial("static", map[string]domain.Trajectory{
			"RASI": {{X: 1}},
		})
}

func TestSource_Contract(t *testing.T) {
	src := newSource()
	ports.RunMarkerSourceContract(t, src)
	ports.RunMeasurementSourceContract(t, src)
}

func TestSource_ReplaceKeepsOrder(t *testing.T) {
	src := newSource()
	src.AddTrial("walk", map[string]domain.Trajectory{"RASI": {{Z: 9}}})

	names, err := src.TrialNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "static"}, names)

	m, err := src.Markers("walk")
	require.NoError(t, err)
	assert.Equal(t, domain.Trajectory{r3.Vec{Z: 9}}, m["RASI"])
}

func TestSource_SetMeasurement(t *testing.T) {
	src := newSource().SetMeasurement("HeadOffset", 12)
	m, err := src.Measurements()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Bodymass": 72, "HeadOffset": 12}, m)
}
