// Package validator checks a calculation plan for references the engine
// would silently satisfy with zeros, and inputs missing from a dataset.
package validator

import (
	"math"
	"strconv"

	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Severity ranks an issue.
type Severity string

const (
	// SeverityError marks a reference that can never hold computed data.
	SeverityError Severity = "error"
	// SeverityWarning marks an input the step may or may not tolerate.
	SeverityWarning Severity = "warning"
)

// Issue is one finding.
type Issue struct {
	Severity Severity
	Step     string
	Param    string
	Reason   string
}

func (i Issue) err() error {
	return &ValidationError{Step: i.Step, Param: i.Param, Reason: i.Reason}
}

// Plan reports Axis and Angle params that reference outputs not produced
// before the step runs. Axis steps all run before angle steps, so an axis
// step reading an angle output is always a forward reference.
func Plan(p *registry.Plan) []Issue {
	var issues []Issue
	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		for i, s := range p.Steps(ns) {
			for _, param := range s.Params {
				var target domain.Namespace
				switch param.Kind {
				case domain.KindAxis:
					target = domain.NamespaceAxis
				case domain.KindAngle:
					target = domain.NamespaceAngle
				default:
					continue
				}
				if reason, bad := checkRef(p, ns, i, target, param.Name); bad {
					issues = append(issues, Issue{Severity: SeverityError, Step: s.Name, Param: param.String(), Reason: reason})
				}
			}
		}
	}
	return issues
}

func checkRef(p *registry.Plan, ns domain.Namespace, pos int, target domain.Namespace, output string) (string, bool) {
	producer, ok := p.Producer(target, output)
	if !ok {
		return "no step produces this output", true
	}
	if ns == domain.NamespaceAxis && target == domain.NamespaceAngle {
		return "angle outputs are computed after every axis step", true
	}
	if ns != target {
		return "", false
	}
	at, _ := p.Index(target, producer)
	if at >= pos {
		return "produced by " + producer + ", which runs later", true
	}
	return "", false
}

// Dataset reports marker and measurement params absent from the data. A
// marker counts as absent when no trial carries it.
func Dataset(p *registry.Plan, data *dataset.Dataset) []Issue {
	present := map[string]bool{}
	for _, t := range data.Trials() {
		for _, m := range t.MarkerNames() {
			present[m] = true
		}
	}

	var issues []Issue
	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		for _, s := range p.Steps(ns) {
			for _, param := range s.Params {
				switch param.Kind {
				case domain.KindMarker:
					if !present[param.Name] {
						issues = append(issues, Issue{Severity: SeverityWarning, Step: s.Name, Param: param.String(), Reason: "marker not recorded in any trial"})
					}
				case domain.KindMeasurement:
					if _, ok := data.Measurement(param.Name); !ok {
						issues = append(issues, Issue{Severity: SeverityWarning, Step: s.Name, Param: param.String(), Reason: "measurement not provided"})
					}
				}
			}
		}
	}
	return issues
}

// Result reports axis outputs whose frames are not orthonormal right-handed
// bases within tol. Only the first bad frame of each output is reported and
// the issue's Step holds the output name.
func Result(res *domain.Result, tol float64) []Issue {
	var issues []Issue
	for _, name := range res.AxisKeys {
		for f, t := range res.Axes[name] {
			if !orthonormal(t, tol) {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Step:     name,
					Reason:   "frame " + strconv.Itoa(f) + " is not an orthonormal basis",
				})
				break
			}
		}
	}
	return issues
}

func orthonormal(t domain.Transform, tol float64) bool {
	for i := 0; i < 3; i++ {
		bi := t.Basis(i)
		for j := i; j < 3; j++ {
			bj := t.Basis(j)
			want := 0.0
			if i == j {
				want = 1
			}
			dot := bi.X*bj.X + bi.Y*bj.Y + bi.Z*bj.Z
			if !scalar.EqualWithinAbs(dot, want, tol) {
				return false
			}
		}
	}
	det := mat.Det(t.Homogeneous())
	return !math.IsNaN(det) && scalar.EqualWithinAbs(det, 1, tol)
}

// Check returns the error-severity issues of Plan as an AggregateError.
func Check(p *registry.Plan) error {
	var errs []error
	for _, i := range Plan(p) {
		if i.Severity == SeverityError {
			errs = append(errs, i.err())
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
