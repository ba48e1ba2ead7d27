package http

import (
	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/jsonfloat"
	"github.com/aretw0/gaitcgm/pkg/domain"
)

// ModelSummary describes one model of the batch.
type ModelSummary struct {
	Name     string   `json:"name"`
	Variant  string   `json:"variant"`
	Version  uint64   `json:"version"`
	Trials   []string `json:"trials"`
	Computed []string `json:"computed"`
}

// TrialSummary describes the last result of one trial.
type TrialSummary struct {
	Model        string             `json:"model"`
	Trial        string             `json:"trial"`
	Frames       int                `json:"frames"`
	AxisKeys     []string           `json:"axis_keys"`
	AngleKeys    []string           `json:"angle_keys"`
	Measurements map[string]float64 `json:"measurements"`
}

// Frame is one axis frame: basis vectors and origin. Non-finite
// components are sent as "NaN", "+Inf" or "-Inf".
type Frame struct {
	X      jsonfloat.Vec3 `json:"x"`
	Y      jsonfloat.Vec3 `json:"y"`
	Z      jsonfloat.Vec3 `json:"z"`
	Origin jsonfloat.Vec3 `json:"origin"`
}

// Angle is one angle frame in degrees.
type Angle struct {
	X jsonfloat.Float `json:"x"`
	Y jsonfloat.Float `json:"y"`
	Z jsonfloat.Float `json:"z"`
}

func summarizeModel(m *gaitcgm.Model) ModelSummary {
	computed := []string{}
	for _, r := range m.Results() {
		computed = append(computed, r.Trial)
	}
	return ModelSummary{
		Name:     m.Name,
		Variant:  m.Profile().Name,
		Version:  m.Plan().Version,
		Trials:   m.Dataset().TrialNames(),
		Computed: computed,
	}
}

func mapAxis(s domain.AxisSeries) []Frame {
	out := make([]Frame, len(s))
	for f, t := range s {
		out[f] = Frame{
			X:      jsonfloat.FromVec(t.Basis(0)),
			Y:      jsonfloat.FromVec(t.Basis(1)),
			Z:      jsonfloat.FromVec(t.Basis(2)),
			Origin: jsonfloat.FromVec(t.Origin()),
		}
	}
	return out
}

func mapAngle(s domain.AngleSeries) []Angle {
	out := make([]Angle, len(s))
	for f, v := range s {
		out[f] = Angle{X: jsonfloat.Float(v.X), Y: jsonfloat.Float(v.Y), Z: jsonfloat.Float(v.Z)}
	}
	return out
}
