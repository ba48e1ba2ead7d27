package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventRunFinish  EventType = "run_finish"
	EventStepStart  EventType = "step_start"
	EventStepFinish EventType = "step_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Model     string    `json:"model"`
	Trial     string    `json:"trial"`
}

// RunEvent marks the start or end of one trial run.
type RunEvent struct {
	EventBase
	Frames   int           `json:"frames"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// StepEvent marks the start or end of one step invocation.
type StepEvent struct {
	EventBase
	Step      string        `json:"step"`
	Namespace Namespace     `json:"namespace"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnRunFinish  func(context.Context, *RunEvent)
	OnStepStart  func(context.Context, *StepEvent)
	OnStepFinish func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chain(h.OnRunStart, other.OnRunStart),
		OnRunFinish:  chain(h.OnRunFinish, other.OnRunFinish),
		OnStepStart:  chain(h.OnStepStart, other.OnStepStart),
		OnStepFinish: chain(h.OnStepFinish, other.OnStepFinish),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
