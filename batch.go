package gaitcgm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch is an indexable collection of independent models.
type Batch struct {
	models      []*Model
	parallelism int
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithParallelism runs up to n models at once. Values below 2 run models
// sequentially in order.
func WithParallelism(n int) BatchOption {
	return func(b *Batch) {
		b.parallelism = n
	}
}

// NewBatch groups models. Model names must be unique.
func NewBatch(models []*Model, opts ...BatchOption) (*Batch, error) {
	b := &Batch{parallelism: 1}
	seen := make(map[string]bool, len(models))
	for _, m := range models {
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate model %q", m.Name)
		}
		seen[m.Name] = true
		b.models = append(b.models, m)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Len returns the number of models.
func (b *Batch) Len() int { return len(b.models) }

// Model returns the i-th model.
func (b *Batch) Model(i int) *Model { return b.models[i] }

// Models returns the models in insertion order.
func (b *Batch) Models() []*Model {
	return append([]*Model(nil), b.models...)
}

// Lookup finds a model by name.
func (b *Batch) Lookup(name string) (*Model, bool) {
	for _, m := range b.models {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// RunAll runs every model. Sequential runs stop at the first failure; in
// parallel mode the first failure cancels the models that have not finished.
func (b *Batch) RunAll(ctx context.Context) error {
	if b.parallelism < 2 {
		for _, m := range b.models {
			if _, err := m.Run(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)
	for _, m := range b.models {
		g.Go(func() error {
			_, err := m.Run(gctx)
			return err
		})
	}
	return g.Wait()
}
