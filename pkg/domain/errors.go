package domain

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned when the registry is mutated while one of its
// plans is executing.
var ErrRunInProgress = errors.New("registry mutation rejected: run in progress")

// ErrUnknownTrial is returned when a trial name is not part of the dataset.
var ErrUnknownTrial = errors.New("unknown trial")

// UnknownStepError reports a step name absent from the targeted namespace(s).
type UnknownStepError struct {
	Name string
	// Namespace is empty when both namespaces were searched.
	Namespace Namespace
}

func (e *UnknownStepError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("unknown step %q", e.Name)
	}
	return fmt.Sprintf("unknown %s step %q", e.Namespace, e.Name)
}

// ConflictingReturnKindError reports a step that declares both axis and angle outputs.
type ConflictingReturnKindError struct {
	Step string
}

func (e *ConflictingReturnKindError) Error() string {
	return fmt.Sprintf("step %q declares both axis and angle outputs", e.Step)
}

// MissingReturnDeclarationError reports a custom step that declares no outputs.
type MissingReturnDeclarationError struct {
	Step string
}

func (e *MissingReturnDeclarationError) Error() string {
	return fmt.Sprintf("step %q declares neither axis nor angle outputs", e.Step)
}

// MissingImplementationError reports a step that has no bound Func.
type MissingImplementationError struct {
	Step string
}

func (e *MissingImplementationError) Error() string {
	return fmt.Sprintf("step %q has no implementation", e.Step)
}

// DuplicateStepError reports a step name registered twice.
type DuplicateStepError struct {
	Name string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("step %q is already registered", e.Name)
}

// DuplicateOutputError reports an output name declared by two steps of one namespace.
type DuplicateOutputError struct {
	Namespace Namespace
	Output    string
	Step      string
	Owner     string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("%s output %q of step %q is already produced by %q", e.Namespace, e.Output, e.Step, e.Owner)
}

// OutputCountError reports a step that returned a different number of series
// than it declared.
type OutputCountError struct {
	Step string
	Want int
	Got  int
}

func (e *OutputCountError) Error() string {
	return fmt.Sprintf("step %q returned %d outputs, declared %d", e.Step, e.Got, e.Want)
}

// FrameCountError reports an output whose length differs from the trial's frame count.
type FrameCountError struct {
	Step   string
	Output string
	Want   int
	Got    int
}

func (e *FrameCountError) Error() string {
	return fmt.Sprintf("step %q output %q has %d frames, trial has %d", e.Step, e.Output, e.Got, e.Want)
}

// SeriesTypeError reports an output of the wrong series type for its namespace.
type SeriesTypeError struct {
	Step      string
	Output    string
	Namespace Namespace
	Got       Series
}

func (e *SeriesTypeError) Error() string {
	return fmt.Sprintf("step %q output %q: %s step returned %T", e.Step, e.Output, e.Namespace, e.Got)
}

// StepError wraps a failure raised while executing a step for a trial.
type StepError struct {
	Trial string
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("trial %q: step %q: %v", e.Trial, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ErrStaleBuffer is returned when a trial buffer was built for a different
// output schema than the plan being executed.
var ErrStaleBuffer = errors.New("trial buffer does not match the plan's output schema")

// ErrResultNotFound is returned by result stores for unknown model/trial pairs.
var ErrResultNotFound = errors.New("result not found")
