package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"github.com/aretw0/gaitcgm/pkg/schema"
)

// Engine runs the steps of a plan for one trial at a time.
// It holds no per-run state and may be shared by sequential runs.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	model  string
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithModelName labels emitted events.
func WithModelName(name string) EngineOption {
	return func(e *Engine) {
		e.model = name
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Job is one trial run.
type Job struct {
	Plan   *registry.Plan
	Data   *dataset.Dataset
	Trial  *dataset.Trial
	Buffer *schema.TrialBuffer
	// Args may be nil, in which case the params are resolved for this run.
	Args *Bound
}

// Run zeroes the trial buffer, executes every axis step and then every angle
// step, and returns a detached snapshot of the trial. On failure the buffer
// is left invalid and the error is a *domain.StepError; the remaining steps
// are skipped.
func (e *Engine) Run(ctx context.Context, job Job) (*domain.Result, error) {
	if !schema.FromPlan(job.Plan).Equal(job.Buffer.Schema()) {
		return nil, fmt.Errorf("trial %s: %w", job.Trial.Name(), domain.ErrStaleBuffer)
	}
	if job.Buffer.Frames() != job.Trial.Frames() {
		return nil, fmt.Errorf("trial %s: buffer has %d frames, trial has %d: %w",
			job.Trial.Name(), job.Buffer.Frames(), job.Trial.Frames(), domain.ErrStaleBuffer)
	}
	args := job.Args
	if args == nil || args.Version != job.Plan.Version {
		args = Bind(job.Plan, job.Data, job.Trial, job.Buffer)
	}

	job.Buffer.Reset()
	start := e.now()
	e.emitRun(ctx, e.hooks.OnRunStart, domain.EventRunStart, job, 0, nil)

	var err error
	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		if err = e.runNamespace(ctx, job, ns, args.namespace(ns)); err != nil {
			break
		}
	}

	duration := e.now().Sub(start)
	e.emitRun(ctx, e.hooks.OnRunFinish, domain.EventRunFinish, job, duration, err)
	if err != nil {
		job.Buffer.Invalidate()
		e.logger.Debug("trial run failed", "trial", job.Trial.Name(), "err", err)
		return nil, err
	}
	job.Buffer.MarkValid()
	e.logger.Debug("trial run complete", "trial", job.Trial.Name(), "frames", job.Trial.Frames(), "duration", duration)

	return &domain.Result{
		Model:        e.model,
		Trial:        job.Trial.Name(),
		Frames:       job.Trial.Frames(),
		Markers:      job.Trial.CopyMarkers(),
		Axes:         job.Buffer.CopyAxes(),
		Angles:       job.Buffer.CopyAngles(),
		Measurements: job.Data.Measurements(),
		AxisKeys:     job.Plan.Keys(domain.NamespaceAxis),
		AngleKeys:    job.Plan.Keys(domain.NamespaceAngle),
	}, nil
}

func (e *Engine) runNamespace(ctx context.Context, job Job, ns domain.Namespace, args []domain.Args) error {
	for i, s := range job.Plan.Steps(ns) {
		if err := ctx.Err(); err != nil {
			return &domain.StepError{Trial: job.Trial.Name(), Step: s.Name, Err: err}
		}

		e.emitStep(ctx, e.hooks.OnStepStart, domain.EventStepStart, job, s, 0, nil)
		start := e.now()

		out, err := s.Func(args[i])
		if err == nil {
			err = store(job.Buffer, s, out)
		}

		duration := e.now().Sub(start)
		e.emitStep(ctx, e.hooks.OnStepFinish, domain.EventStepFinish, job, s, duration, err)
		if err != nil {
			return &domain.StepError{Trial: job.Trial.Name(), Step: s.Name, Err: err}
		}
		e.logger.Debug("step complete", "trial", job.Trial.Name(), "step", s.Name, "namespace", string(ns), "duration", duration)
	}
	return nil
}

// store validates a step's outputs and copies them into their columns.
func store(buf *schema.TrialBuffer, s domain.Step, out []domain.Series) error {
	if len(out) != len(s.Outputs) {
		return &domain.OutputCountError{Step: s.Name, Want: len(s.Outputs), Got: len(out)}
	}
	for i, name := range s.Outputs {
		if out[i] == nil || out[i].Frames() != buf.Frames() {
			got := 0
			if out[i] != nil {
				got = out[i].Frames()
			}
			return &domain.FrameCountError{Step: s.Name, Output: name, Want: buf.Frames(), Got: got}
		}
		switch s.Namespace {
		case domain.NamespaceAxis:
			series, ok := out[i].(domain.AxisSeries)
			if !ok {
				return &domain.SeriesTypeError{Step: s.Name, Output: name, Namespace: s.Namespace, Got: out[i]}
			}
			col, _ := buf.Axis(name)
			copy(col, series)
		case domain.NamespaceAngle:
			series, ok := out[i].(domain.AngleSeries)
			if !ok {
				return &domain.SeriesTypeError{Step: s.Name, Output: name, Namespace: s.Namespace, Got: out[i]}
			}
			col, _ := buf.Angle(name)
			copy(col, series)
		}
	}
	return nil
}

func (e *Engine) emitRun(ctx context.Context, fn func(context.Context, *domain.RunEvent), typ domain.EventType, job Job, d time.Duration, err error) {
	if fn == nil {
		return
	}
	fn(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ, Model: e.model, Trial: job.Trial.Name()},
		Frames:    job.Trial.Frames(),
		Duration:  d,
		Err:       err,
	})
}

func (e *Engine) emitStep(ctx context.Context, fn func(context.Context, *domain.StepEvent), typ domain.EventType, job Job, s domain.Step, d time.Duration, err error) {
	if fn == nil {
		return
	}
	fn(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ, Model: e.model, Trial: job.Trial.Name()},
		Step:      s.Name,
		Namespace: s.Namespace,
		Duration:  d,
		Err:       err,
	})
}
