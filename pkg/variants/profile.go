package variants

import (
	"sort"

	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
)

// Mutator is the mutation surface a profile needs. Both *registry.Registry
// and *gaitcgm.Model satisfy it.
type Mutator interface {
	Override(name string, params []domain.Param, outputs ...string) error
	Insert(spec domain.StepSpec, anchor string, offset int) error
	Append(spec domain.StepSpec) error
}

// Profile is a named model variant.
type Profile struct {
	Name    string
	Variant registry.Variant
	// Setup runs once, after the builtin steps are registered. It may be nil.
	Setup func(Mutator) error
}

// Apply runs the profile's Setup, if any.
func (p Profile) Apply(m Mutator) error {
	if p.Setup == nil {
		return nil
	}
	return p.Setup(m)
}

// Default is the plain builtin model.
var Default = Profile{Name: "default"}

// CustomPelvis replaces the pelvis axis with one that also reads the subject's
// body mass and an optional vertical origin offset.
var CustomPelvis = Profile{
	Name: "custom-pelvis",
	Variant: registry.Variant{
		Name: "custom-pelvis",
		Impl: map[string]domain.Func{calc.StepPelvisAxis: CustomPelvisAxis},
	},
	Setup: func(m Mutator) error {
		return m.Override(calc.StepPelvisAxis, CustomPelvisParams())
	},
}

// EyeAxis adds virtual eye frames right after the head axis.
var EyeAxis = Profile{
	Name: "eye-axis",
	Variant: registry.Variant{
		Name: "eye-axis",
		Impl: map[string]domain.Func{StepEyeAxis: EyeAxes},
	},
	Setup: func(m Mutator) error {
		return m.Insert(EyeAxisSpec(), calc.StepHeadAxis, 1)
	},
}

var profiles = map[string]Profile{
	Default.Name:      Default,
	CustomPelvis.Name: CustomPelvis,
	EyeAxis.Name:      EyeAxis,
}

// Lookup returns a profile by name. The empty name is the default profile.
func Lookup(name string) (Profile, bool) {
	if name == "" {
		return Default, true
	}
	p, ok := profiles[name]
	return p, ok
}

// Names lists the known profiles.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
