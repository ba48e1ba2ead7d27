// Package config loads model configuration files.
//
// A configuration names the model, selects a variant profile and lists the
// registry mutations to apply after the builtin steps are registered:
//
//	name: subject-01
//	variant: eye-axis
//	overrides:
//	  - step: calc_axis_pelvis
//	    params:
//	      - {kind: marker, name: RASI}
//	      - {kind: marker, name: LASI}
//	inserts:
//	  - name: calc_axis_virtual
//	    impl: marker_origin
//	    anchor: calc_axis_head
//	    offset: 1
//	    params: [{kind: marker, name: LFHD}]
//	    returns_axes: [Virtual]
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ParamConfig is one symbolic param.
type ParamConfig struct {
	Kind  string `mapstructure:"kind"`
	Name  string `mapstructure:"name"`
	Value any    `mapstructure:"value"`
}

// OverrideConfig replaces the params, and optionally the outputs, of a step.
type OverrideConfig struct {
	Step    string        `mapstructure:"step"`
	Params  []ParamConfig `mapstructure:"params"`
	Outputs []string      `mapstructure:"outputs"`
}

// StepConfig declares a custom step for Insert or Append.
type StepConfig struct {
	Name string `mapstructure:"name"`
	// Impl names an extension implementation. When empty, the registry binds
	// the step by name.
	Impl          string        `mapstructure:"impl"`
	Anchor        string        `mapstructure:"anchor"`
	Offset        int           `mapstructure:"offset"`
	Params        []ParamConfig `mapstructure:"params"`
	ReturnsAxes   []string      `mapstructure:"returns_axes"`
	ReturnsAngles []string      `mapstructure:"returns_angles"`
}

// ModelConfig is the decoded configuration file.
type ModelConfig struct {
	Name      string           `mapstructure:"name"`
	Variant   string           `mapstructure:"variant"`
	Overrides []OverrideConfig `mapstructure:"overrides"`
	Inserts   []StepConfig     `mapstructure:"inserts"`
	Appends   []StepConfig     `mapstructure:"appends"`
}

// Load reads a configuration file (YAML or JSON, chosen by extension).
func Load(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model config: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes configuration bytes. ext selects JSON for ".json" and YAML
// otherwise.
func Parse(data []byte, ext string) (*ModelConfig, error) {
	var raw map[string]any
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse model config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse model config yaml: %w", err)
		}
	}
	return Decode(raw)
}

// Decode maps a generic document onto a ModelConfig. Unknown keys are
// rejected so typos do not silently drop mutations.
func Decode(raw map[string]any) (*ModelConfig, error) {
	var cfg ModelConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid model config: %w", err)
	}
	return &cfg, nil
}

// Param converts the entry into a domain param.
func (p ParamConfig) Param() (domain.Param, error) {
	kind, err := domain.ParseParamKind(p.Kind)
	if err != nil {
		return domain.Param{}, err
	}
	if kind == domain.KindConstant {
		return domain.Constant(p.Value), nil
	}
	if p.Name == "" {
		return domain.Param{}, fmt.Errorf("%s param without a name", kind)
	}
	return domain.Param{Kind: kind, Name: p.Name}, nil
}

// Params converts a list of entries.
func Params(in []ParamConfig) ([]domain.Param, error) {
	out := make([]domain.Param, 0, len(in))
	for i, p := range in {
		param, err := p.Param()
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		out = append(out, param)
	}
	return out, nil
}

// Spec builds the step declaration, resolving Impl through lookup.
func (s StepConfig) Spec(lookup func(name string) (domain.Func, bool)) (domain.StepSpec, error) {
	if s.Name == "" {
		return domain.StepSpec{}, fmt.Errorf("step without a name")
	}
	params, err := Params(s.Params)
	if err != nil {
		return domain.StepSpec{}, fmt.Errorf("step %s: %w", s.Name, err)
	}
	spec := domain.StepSpec{
		Name:          s.Name,
		Params:        params,
		ReturnsAxes:   s.ReturnsAxes,
		ReturnsAngles: s.ReturnsAngles,
	}
	if s.Impl != "" {
		fn, ok := lookup(s.Impl)
		if !ok {
			return domain.StepSpec{}, fmt.Errorf("step %s: unknown implementation %q", s.Name, s.Impl)
		}
		spec.Func = fn
	}
	return spec, nil
}
