package gaitcgm

import (
	"fmt"

	"github.com/aretw0/gaitcgm/pkg/config"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/variants"
)

// NewFromConfig creates a model with the configured name and variant and
// applies the configured mutations. Options given here take precedence.
func NewFromConfig(data *dataset.Dataset, cfg *config.ModelConfig, opts ...Option) (*Model, error) {
	profile, ok := variants.Lookup(cfg.Variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (known: %v)", cfg.Variant, variants.Names())
	}
	base := []Option{WithProfile(profile)}
	if cfg.Name != "" {
		base = append(base, WithName(cfg.Name))
	}
	m, err := New(data, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := ApplyConfig(m, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// ApplyConfig applies overrides, then inserts, then appends, in file order.
// It stops at the first failing mutation; earlier mutations stay applied.
func ApplyConfig(m *Model, cfg *config.ModelConfig) error {
	for _, o := range cfg.Overrides {
		params, err := config.Params(o.Params)
		if err != nil {
			return fmt.Errorf("override %s: %w", o.Step, err)
		}
		if err := m.Override(o.Step, params, o.Outputs...); err != nil {
			return fmt.Errorf("override %s: %w", o.Step, err)
		}
	}
	for _, s := range cfg.Inserts {
		spec, err := s.Spec(variants.Extension)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		if err := m.Insert(spec, s.Anchor, s.Offset); err != nil {
			return fmt.Errorf("insert %s: %w", s.Name, err)
		}
	}
	for _, s := range cfg.Appends {
		spec, err := s.Spec(variants.Extension)
		if err != nil {
			return fmt.Errorf("append: %w", err)
		}
		if err := m.Append(spec); err != nil {
			return fmt.Errorf("append %s: %w", s.Name, err)
		}
	}
	return nil
}
