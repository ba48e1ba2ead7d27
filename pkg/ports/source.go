package ports

import "github.com/aretw0/gaitcgm/pkg/domain"

// MarkerSource provides marker trajectories per trial.
// Frame counts may differ between trials but not between markers of one trial.
type MarkerSource interface {
	// TrialNames returns the trials in a stable order.
	TrialNames() ([]string, error)

	// Markers returns the trajectories of one trial keyed by marker name.
	// Returns domain.ErrUnknownTrial if the trial does not exist.
	Markers(trial string) (map[string]domain.Trajectory, error)
}

// MeasurementSource provides the subject's constant measurements.
type MeasurementSource interface {
	Measurements() (map[string]float64, error)
}

// SubjectSource is implemented by adapters that provide both inputs.
type SubjectSource interface {
	MarkerSource
	MeasurementSource
}
