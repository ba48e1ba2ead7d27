package gaitcgm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/gaitcgm/internal/runtime"
	"github.com/aretw0/gaitcgm/internal/validator"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"github.com/aretw0/gaitcgm/pkg/schema"
	"github.com/aretw0/gaitcgm/pkg/variants"
)

// Model owns one registry, one dataset and one output buffer per trial.
// A model never runs twice concurrently; registry mutations are rejected
// while a run is in flight.
type Model struct {
	Name string

	reg      *registry.Registry
	data     *dataset.Dataset
	engine   *runtime.Engine
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	profile  variants.Profile
	defaults []domain.Step

	mu      sync.Mutex
	plan    *registry.Plan
	schema  schema.Schema
	buffers map[string]*schema.TrialBuffer
	bound   map[string]*runtime.Bound
	results map[string]*domain.Result
}

// Option defines a functional option for configuring a Model.
type Option func(*Model)

// WithName sets the model name. It defaults to the dataset's subject.
func WithName(name string) Option {
	return func(m *Model) {
		m.Name = name
	}
}

// WithLogger sets a custom structured logger for the model.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Hooks from several
// options are all called, in option order. Hooks run while the model is
// locked and must not call back into it.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Model) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithProfile selects a subject-specific variant.
func WithProfile(p variants.Profile) Option {
	return func(m *Model) {
		m.profile = p
	}
}

// WithDefaults replaces the builtin step table.
func WithDefaults(steps []domain.Step) Option {
	return func(m *Model) {
		m.defaults = steps
	}
}

// New registers the builtin steps, applies the profile and builds one
// buffer per trial.
func New(data *dataset.Dataset, opts ...Option) (*Model, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	m := &Model{data: data, profile: variants.Default}
	for _, opt := range opts {
		opt(m)
	}
	if m.Name == "" {
		m.Name = data.Subject()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("model", m.Name)
	}
	if m.defaults == nil {
		m.defaults = calc.Defaults()
	}

	m.reg = registry.New(registry.WithVariant(m.profile.Variant))
	if err := m.reg.RegisterDefaults(m.defaults); err != nil {
		return nil, fmt.Errorf("failed to register defaults: %w", err)
	}
	if err := m.profile.Apply(m.reg); err != nil {
		return nil, fmt.Errorf("failed to apply profile %s: %w", m.profile.Name, err)
	}

	m.engine = runtime.NewEngine(
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithModelName(m.Name),
	)

	m.mu.Lock()
	m.syncLocked(m.reg.Snapshot())
	m.mu.Unlock()
	return m, nil
}

// Override replaces the params, and optionally the outputs, of a step.
func (m *Model) Override(name string, params []domain.Param, outputs ...string) error {
	return m.mutate("override", name, func() error { return m.reg.Override(name, params, outputs...) })
}

// Insert places a custom step relative to anchor; see registry.Registry.Insert.
func (m *Model) Insert(spec domain.StepSpec, anchor string, offset int) error {
	return m.mutate("insert", spec.Name, func() error { return m.reg.Insert(spec, anchor, offset) })
}

// Append adds a custom step at the end of its namespace.
func (m *Model) Append(spec domain.StepSpec) error {
	return m.mutate("append", spec.Name, func() error { return m.reg.Append(spec) })
}

func (m *Model) mutate(op, step string, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncLocked(m.reg.Snapshot())
	m.logger.Debug("registry mutated", "op", op, "step", step, "version", m.plan.Version)
	return nil
}

// syncLocked brings buffers and bindings up to date with plan. Buffers are
// rebuilt only when the output schema changed; every change discards the
// results of earlier runs.
func (m *Model) syncLocked(plan *registry.Plan) {
	if m.plan != nil && m.plan.Version == plan.Version {
		return
	}
	s := schema.FromPlan(plan)
	if m.buffers == nil || !s.Equal(m.schema) {
		m.schema = s
		m.buffers = schema.BuildAll(s, m.data.FrameCounts())
	} else {
		for _, buf := range m.buffers {
			buf.Invalidate()
		}
	}
	m.bound = make(map[string]*runtime.Bound, len(m.buffers))
	for _, t := range m.data.Trials() {
		m.bound[t.Name()] = runtime.Bind(plan, m.data, t, m.buffers[t.Name()])
	}
	m.plan = plan
	m.results = make(map[string]*domain.Result)
}

// Run executes every trial in dataset order and returns their results.
// It stops at the first failing trial.
func (m *Model) Run(ctx context.Context) ([]*domain.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, release := m.reg.BeginRun()
	defer release()
	m.syncLocked(plan)

	start := time.Now()
	out := make([]*domain.Result, 0, len(m.buffers))
	for _, t := range m.data.Trials() {
		res, err := m.engine.Run(ctx, runtime.Job{
			Plan:   plan,
			Data:   m.data,
			Trial:  t,
			Buffer: m.buffers[t.Name()],
			Args:   m.bound[t.Name()],
		})
		if err != nil {
			m.logger.Error("trial failed", "trial", t.Name(), "err", err)
			return out, fmt.Errorf("model %s: %w", m.Name, err)
		}
		m.results[t.Name()] = res
		out = append(out, res)
	}
	m.logger.Info("model run complete", "trials", len(out), "version", plan.Version, "duration", time.Since(start))
	return out, nil
}

// Result returns the last successful result of a trial.
func (m *Model) Result(trial string) (*domain.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[trial]
	return r, ok
}

// Results returns the last successful results in dataset order.
func (m *Model) Results() []*domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Result
	for _, t := range m.data.TrialNames() {
		if r, ok := m.results[t]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Buffer returns the live output buffer of a trial.
func (m *Model) Buffer(trial string) (*schema.TrialBuffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buffers[trial]
	return b, ok
}

// ResolvedArgs returns the cached args of a step for a trial.
func (m *Model) ResolvedArgs(trial, step string) (domain.Args, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bound[trial]
	if !ok {
		return nil, false
	}
	return b.Args(m.plan, step)
}

// Plan returns the plan the buffers were built for.
func (m *Model) Plan() *registry.Plan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plan
}

// Schema returns the current output columns.
func (m *Model) Schema() schema.Schema {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schema
}

// Registry exposes the underlying registry. Mutations made through it are
// picked up by the next Run.
func (m *Model) Registry() *registry.Registry { return m.reg }

// Dataset returns the model's input data.
func (m *Model) Dataset() *dataset.Dataset { return m.data }

// Profile returns the selected variant profile.
func (m *Model) Profile() variants.Profile { return m.profile }

// Validate reports step references that can never hold computed data.
func (m *Model) Validate() error {
	return validator.Check(m.reg.Snapshot())
}
