package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// Store implements ports.ResultStore in memory. Results are copied on the
// way in and out.
type Store struct {
	mu      sync.RWMutex
	results map[string]map[string]*domain.Result
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{results: make(map[string]map[string]*domain.Result)}
}

// Save stores a copy of res.
func (s *Store) Save(ctx context.Context, res *domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	trials, ok := s.results[res.Model]
	if !ok {
		trials = make(map[string]*domain.Result)
		s.results[res.Model] = trials
	}
	trials[res.Trial] = res.Clone()
	return nil
}

// Load returns a copy of the stored result.
func (s *Store) Load(ctx context.Context, model, trial string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[model][trial]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return res.Clone(), nil
}

// List returns the stored trials of model.
func (s *Store) List(ctx context.Context, model string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.results[model]))
	for trial := range s.results[model] {
		out = append(out, trial)
	}
	sort.Strings(out)
	return out, nil
}

// Delete removes a result.
func (s *Store) Delete(ctx context.Context, model, trial string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results[model], trial)
	return nil
}
