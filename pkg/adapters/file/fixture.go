// Package file reads and writes subject fixtures: measurements plus marker
// trajectories in YAML or JSON, chosen by file extension.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/ports"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// TrialFile is one trial as stored on disk. Each marker is a list of
// [x, y, z] frames.
type TrialFile struct {
	Name    string                  `yaml:"name" json:"name"`
	Markers map[string][][3]float64 `yaml:"markers" json:"markers"`
}

// SubjectFile is the on-disk fixture layout.
type SubjectFile struct {
	Subject      string             `yaml:"subject" json:"subject"`
	Measurements map[string]float64 `yaml:"measurements" json:"measurements"`
	Trials       []TrialFile        `yaml:"trials" json:"trials"`
}

// Fixture is a loaded subject file. It implements ports.SubjectSource.
type Fixture struct {
	file SubjectFile
}

// Load reads a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var sf SubjectFile
	if isJSON(path) {
		if err := json.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("failed to parse fixture json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("failed to parse fixture yaml: %w", err)
		}
	}

	seen := map[string]bool{}
	for i, t := range sf.Trials {
		if t.Name == "" {
			return nil, fmt.Errorf("fixture trial %d has no name", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("fixture trial %q listed twice", t.Name)
		}
		seen[t.Name] = true
	}
	if sf.Subject == "" {
		sf.Subject = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &Fixture{file: sf}, nil
}

// Subject returns the subject name, defaulting to the file's base name.
func (f *Fixture) Subject() string { return f.file.Subject }

// TrialNames returns the trials in file order.
func (f *Fixture) TrialNames() ([]string, error) {
	out := make([]string, len(f.file.Trials))
	for i, t := range f.file.Trials {
		out[i] = t.Name
	}
	return out, nil
}

// Markers converts one trial into trajectories.
func (f *Fixture) Markers(trial string) (map[string]domain.Trajectory, error) {
	for _, t := range f.file.Trials {
		if t.Name != trial {
			continue
		}
		out := make(map[string]domain.Trajectory, len(t.Markers))
		for name, frames := range t.Markers {
			traj := make(domain.Trajectory, len(frames))
			for i, p := range frames {
				traj[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
			}
			out[name] = traj
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrial, trial)
}

// Measurements returns a copy of the measurements.
func (f *Fixture) Measurements() (map[string]float64, error) {
	out := make(map[string]float64, len(f.file.Measurements))
	for k, v := range f.file.Measurements {
		out[k] = v
	}
	return out, nil
}

// Write dumps a subject source into a fixture file.
func Write(path, subject string, src ports.SubjectSource) error {
	ms, err := src.Measurements()
	if err != nil {
		return fmt.Errorf("failed to read measurements: %w", err)
	}
	names, err := src.TrialNames()
	if err != nil {
		return fmt.Errorf("failed to list trials: %w", err)
	}

	sf := SubjectFile{Subject: subject, Measurements: ms}
	for _, name := range names {
		markers, err := src.Markers(name)
		if err != nil {
			return fmt.Errorf("failed to read trial %s: %w", name, err)
		}
		tf := TrialFile{Name: name, Markers: make(map[string][][3]float64, len(markers))}
		for m, traj := range markers {
			frames := make([][3]float64, len(traj))
			for i, p := range traj {
				frames[i] = [3]float64{p.X, p.Y, p.Z}
			}
			tf.Markers[m] = frames
		}
		sf.Trials = append(sf.Trials, tf)
	}

	var data []byte
	if isJSON(path) {
		data, err = json.MarshalIndent(sf, "", "  ")
	} else {
		data, err = yaml.Marshal(sf)
	}
	if err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func isJSON(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}
