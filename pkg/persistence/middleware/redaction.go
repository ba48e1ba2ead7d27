package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.ResultStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that drops subject
// measurements whose name matches one of the patterns before saving.
// The caller's result is not modified.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ResultStore) ports.ResultStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, res *domain.Result) error {
	if res.Measurements == nil {
		return m.next.Save(ctx, res)
	}
	cloned := *res
	cloned.Measurements = make(map[string]float64, len(res.Measurements))
	for k, v := range res.Measurements {
		if !m.matches(k) {
			cloned.Measurements[k] = v
		}
	}
	return m.next.Save(ctx, &cloned)
}

func (m *redactionMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

func (m *redactionMiddleware) Load(ctx context.Context, model, trial string) (*domain.Result, error) {
	return m.next.Load(ctx, model, trial)
}

func (m *redactionMiddleware) List(ctx context.Context, model string) ([]string, error) {
	return m.next.List(ctx, model)
}

func (m *redactionMiddleware) Delete(ctx context.Context, model, trial string) error {
	return m.next.Delete(ctx, model, trial)
}
