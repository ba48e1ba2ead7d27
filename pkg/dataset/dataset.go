package dataset

import (
	"fmt"
	"sort"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/ports"
)

// Trial is one recorded motion sequence. All its markers have the same
// number of frames.
type Trial struct {
	name    string
	frames  int
	markers map[string]domain.Trajectory
}

// NewTrial copies markers into a trial, rejecting trajectories of unequal
// length.
func NewTrial(name string, markers map[string]domain.Trajectory) (*Trial, error) {
	if name == "" {
		return nil, fmt.Errorf("trial name is required")
	}
	t := &Trial{name: name, frames: -1, markers: make(map[string]domain.Trajectory, len(markers))}
	for _, m := range sortedKeys(markers) {
		traj := markers[m]
		if t.frames < 0 {
			t.frames = len(traj)
		} else if len(traj) != t.frames {
			return nil, fmt.Errorf("trial %s: marker %s has %d frames, expected %d", name, m, len(traj), t.frames)
		}
		t.markers[m] = append(domain.Trajectory(nil), traj...)
	}
	if t.frames < 0 {
		t.frames = 0
	}
	return t, nil
}

// Name returns the trial name.
func (t *Trial) Name() string { return t.name }

// Frames returns the frame count shared by all markers.
func (t *Trial) Frames() int { return t.frames }

// Marker returns the trajectory of a marker. The result must not be modified.
func (t *Trial) Marker(name string) (domain.Trajectory, bool) {
	m, ok := t.markers[name]
	return m, ok
}

// MarkerNames returns the marker names in sorted order.
func (t *Trial) MarkerNames() []string {
	return sortedKeys(t.markers)
}

// CopyMarkers returns a deep copy of every trajectory.
func (t *Trial) CopyMarkers() map[string]domain.Trajectory {
	out := make(map[string]domain.Trajectory, len(t.markers))
	for k, v := range t.markers {
		out[k] = append(domain.Trajectory(nil), v...)
	}
	return out
}

// Dataset is the immutable input of a model. It may be shared between models.
type Dataset struct {
	subject      string
	measurements map[string]float64
	order        []string
	trials       map[string]*Trial
}

// New assembles a dataset from already built trials.
func New(subject string, measurements map[string]float64, trials ...*Trial) (*Dataset, error) {
	d := &Dataset{
		subject:      subject,
		measurements: make(map[string]float64, len(measurements)),
		trials:       make(map[string]*Trial, len(trials)),
	}
	for k, v := range measurements {
		d.measurements[k] = v
	}
	for _, t := range trials {
		if _, dup := d.trials[t.Name()]; dup {
			return nil, fmt.Errorf("duplicate trial %q", t.Name())
		}
		d.trials[t.Name()] = t
		d.order = append(d.order, t.Name())
	}
	return d, nil
}

// Build reads every trial from markers and the measurements from ms.
func Build(subject string, ms ports.MeasurementSource, markers ports.MarkerSource) (*Dataset, error) {
	measurements, err := ms.Measurements()
	if err != nil {
		return nil, fmt.Errorf("failed to read measurements: %w", err)
	}
	names, err := markers.TrialNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list trials: %w", err)
	}
	trials := make([]*Trial, 0, len(names))
	for _, name := range names {
		m, err := markers.Markers(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read trial %s: %w", name, err)
		}
		t, err := NewTrial(name, m)
		if err != nil {
			return nil, err
		}
		trials = append(trials, t)
	}
	return New(subject, measurements, trials...)
}

// Subject returns the subject identifier.
func (d *Dataset) Subject() string { return d.subject }

// Measurement returns a measurement by name.
func (d *Dataset) Measurement(name string) (float64, bool) {
	v, ok := d.measurements[name]
	return v, ok
}

// Measurements returns a copy of all measurements.
func (d *Dataset) Measurements() map[string]float64 {
	out := make(map[string]float64, len(d.measurements))
	for k, v := range d.measurements {
		out[k] = v
	}
	return out
}

// TrialNames returns the trials in insertion order.
func (d *Dataset) TrialNames() []string {
	return append([]string(nil), d.order...)
}

// Trials returns the trials in insertion order.
func (d *Dataset) Trials() []*Trial {
	out := make([]*Trial, len(d.order))
	for i, name := range d.order {
		out[i] = d.trials[name]
	}
	return out
}

// Trial returns a trial by name.
func (d *Dataset) Trial(name string) (*Trial, error) {
	t, ok := d.trials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrial, name)
	}
	return t, nil
}

// FrameCounts returns the frame count of every trial.
func (d *Dataset) FrameCounts() map[string]int {
	out := make(map[string]int, len(d.trials))
	for name, t := range d.trials {
		out[name] = t.Frames()
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
