// Package memory provides in-memory marker and measurement sources.
package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// Source implements ports.MarkerSource and ports.MeasurementSource in memory.
// Safe for concurrent use.
type Source struct {
	mu           sync.RWMutex
	order        []string
	trials       map[string]map[string]domain.Trajectory
	measurements map[string]float64
}

// New creates a source with the given measurements.
func New(measurements map[string]float64) *Source {
	s := &Source{
		trials:       make(map[string]map[string]domain.Trajectory),
		measurements: make(map[string]float64, len(measurements)),
	}
	for k, v := range measurements {
		s.measurements[k] = v
	}
	return s
}

// AddTrial stores a copy of markers under name, replacing an existing trial
// of the same name in place.
func (s *Source) AddTrial(name string, markers map[string]domain.Trajectory) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trials[name]; !ok {
		s.order = append(s.order, name)
	}
	s.trials[name] = copyMarkers(markers)
	return s
}

// SetMeasurement sets one measurement.
func (s *Source) SetMeasurement(name string, v float64) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.measurements[name] = v
	return s
}

// TrialNames returns the trials in insertion order.
func (s *Source) TrialNames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

// Markers returns a copy of one trial's trajectories.
func (s *Source) Markers(trial string) (map[string]domain.Trajectory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.trials[trial]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrial, trial)
	}
	return copyMarkers(m), nil
}

// Measurements returns a copy of the measurements.
func (s *Source) Measurements() (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.measurements))
	for k, v := range s.measurements {
		out[k] = v
	}
	return out, nil
}

func copyMarkers(in map[string]domain.Trajectory) map[string]domain.Trajectory {
	out := make(map[string]domain.Trajectory, len(in))
	for k, v := range in {
		out[k] = append(domain.Trajectory(nil), v...)
	}
	return out
}
