package registry

import (
	"sync"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// Variant is a subject-specific capability table: step name to the
// implementation that replaces the builtin one. It is consulted when defaults
// are registered and again on every Override.
type Variant struct {
	Name string
	Impl map[string]domain.Func
}

// Option configures a Registry.
type Option func(*Registry)

// WithVariant binds the variant's implementations ahead of the builtin table.
func WithVariant(v Variant) Option {
	return func(r *Registry) {
		r.variant = v.Name
		for name, fn := range v.Impl {
			if fn != nil {
				r.bindings[name] = fn
			}
		}
	}
}

// Registry holds the ordered axis and angle steps of one model.
//
// Every mutation copies the affected namespace, validates it and swaps it in
// under the lock, so readers never observe a partially updated registry and a
// failed mutation leaves it unchanged.
type Registry struct {
	mu       sync.Mutex
	axis     *table
	angle    *table
	builtins map[string]domain.Func
	bindings map[string]domain.Func
	variant  string
	version  uint64
	inflight int
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		axis:     emptyTable(domain.NamespaceAxis),
		angle:    emptyTable(domain.NamespaceAngle),
		builtins: make(map[string]domain.Func),
		bindings: make(map[string]domain.Func),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterDefaults appends the builtin steps to their namespaces. Each step's
// Func is remembered as the builtin implementation and replaced by the
// variant's implementation when one exists.
func (r *Registry) RegisterDefaults(steps []domain.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight > 0 {
		return domain.ErrRunInProgress
	}

	axis := r.axis.stepsCopy()
	angle := r.angle.stepsCopy()
	builtins := make(map[string]domain.Func, len(steps))
	for _, s := range steps {
		s = s.Clone()
		builtins[s.Name] = s.Func
		if fn, ok := r.bindings[s.Name]; ok {
			s.Func = fn
		}
		if s.Func == nil {
			return &domain.MissingImplementationError{Step: s.Name}
		}
		switch s.Namespace {
		case domain.NamespaceAxis:
			axis = append(axis, s)
		case domain.NamespaceAngle:
			angle = append(angle, s)
		default:
			return &domain.MissingReturnDeclarationError{Step: s.Name}
		}
	}

	newAxis, err := newTable(domain.NamespaceAxis, axis)
	if err != nil {
		return err
	}
	newAngle, err := newTable(domain.NamespaceAngle, angle)
	if err != nil {
		return err
	}
	if err := checkCrossNamespace(newAxis, newAngle); err != nil {
		return err
	}

	for name, fn := range builtins {
		r.builtins[name] = fn
	}
	r.axis, r.angle = newAxis, newAngle
	r.version++
	return nil
}

// Override replaces the params of an existing step and, when outputs are
// given, its declared outputs. The implementation is rebound: the variant's
// implementation first, then the builtin one, else the current one.
func (r *Registry) Override(name string, params []domain.Param, outputs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight > 0 {
		return domain.ErrRunInProgress
	}

	t := r.axis
	i, ok := t.index[name]
	if !ok {
		t = r.angle
		if i, ok = t.index[name]; !ok {
			return &domain.UnknownStepError{Name: name}
		}
	}

	steps := t.stepsCopy()
	s := steps[i].Clone()
	s.Params = domain.CloneParams(params)
	if len(outputs) > 0 {
		s.Outputs = append([]string(nil), outputs...)
	}
	s.Func = r.bind(name, s.Func)
	steps[i] = s

	return r.swap(t.ns, steps)
}

// Insert adds a step relative to anchor. The target is measured in output
// slots of the anchor's namespace: the anchor's first output slot plus
// offset, clamped into [0, len(keys)]. A slot that falls strictly inside a
// multi-output step places the new step directly after that step, so output
// groups are never split.
func (r *Registry) Insert(spec domain.StepSpec, anchor string, offset int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight > 0 {
		return domain.ErrRunInProgress
	}

	s, err := r.compile(spec)
	if err != nil {
		return err
	}
	t := r.tableFor(s.Namespace)
	ai, ok := t.index[anchor]
	if !ok {
		return &domain.UnknownStepError{Name: anchor, Namespace: s.Namespace}
	}

	pos := t.positionForSlot(t.spans[ai].start + offset)
	steps := t.stepsCopy()
	steps = append(steps, domain.Step{})
	copy(steps[pos+1:], steps[pos:])
	steps[pos] = s

	return r.swap(s.Namespace, steps)
}

// Append adds a step at the end of its namespace.
func (r *Registry) Append(spec domain.StepSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight > 0 {
		return domain.ErrRunInProgress
	}

	s, err := r.compile(spec)
	if err != nil {
		return err
	}
	steps := append(r.tableFor(s.Namespace).stepsCopy(), s)
	return r.swap(s.Namespace, steps)
}

// Snapshot returns an immutable view of the current registry state.
func (r *Registry) Snapshot() *Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.planLocked()
}

// BeginRun marks a run as in flight and returns the plan to execute.
// Mutations fail with domain.ErrRunInProgress until release is called.
func (r *Registry) BeginRun() (plan *Plan, release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight++
	var once sync.Once
	return r.planLocked(), func() {
		once.Do(func() {
			r.mu.Lock()
			r.inflight--
			r.mu.Unlock()
		})
	}
}

// Version increments on every successful mutation.
func (r *Registry) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Variant returns the name of the bound variant, if any.
func (r *Registry) Variant() string {
	return r.variant
}

// Lookup finds a step by name in either namespace.
func (r *Registry) Lookup(name string) (domain.Step, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range []*table{r.axis, r.angle} {
		if i, ok := t.index[name]; ok {
			return t.steps[i].Clone(), true
		}
	}
	return domain.Step{}, false
}

func (r *Registry) planLocked() *Plan {
	return &Plan{
		Version: r.version,
		Variant: r.variant,
		axis:    r.axis,
		angle:   r.angle,
	}
}

func (r *Registry) compile(spec domain.StepSpec) (domain.Step, error) {
	s, err := spec.Compile()
	if err != nil {
		return domain.Step{}, err
	}
	if _, ok := r.axis.index[s.Name]; ok {
		return domain.Step{}, &domain.DuplicateStepError{Name: s.Name}
	}
	if _, ok := r.angle.index[s.Name]; ok {
		return domain.Step{}, &domain.DuplicateStepError{Name: s.Name}
	}
	if s.Func == nil {
		s.Func = r.bind(s.Name, nil)
	}
	if s.Func == nil {
		return domain.Step{}, &domain.MissingImplementationError{Step: s.Name}
	}
	return s, nil
}

func (r *Registry) bind(name string, current domain.Func) domain.Func {
	if fn, ok := r.bindings[name]; ok {
		return fn
	}
	if fn, ok := r.builtins[name]; ok && fn != nil {
		return fn
	}
	return current
}

func (r *Registry) tableFor(ns domain.Namespace) *table {
	if ns == domain.NamespaceAngle {
		return r.angle
	}
	return r.axis
}

// swap rebuilds the derived structures of ns from steps and installs them.
func (r *Registry) swap(ns domain.Namespace, steps []domain.Step) error {
	t, err := newTable(ns, steps)
	if err != nil {
		return err
	}
	axis, angle := r.axis, r.angle
	if ns == domain.NamespaceAngle {
		angle = t
	} else {
		axis = t
	}
	if err := checkCrossNamespace(axis, angle); err != nil {
		return err
	}
	r.axis, r.angle = axis, angle
	r.version++
	return nil
}

// checkCrossNamespace rejects a step name present in both namespaces.
func checkCrossNamespace(axis, angle *table) error {
	for name := range angle.index {
		if _, ok := axis.index[name]; ok {
			return &domain.DuplicateStepError{Name: name}
		}
	}
	return nil
}
