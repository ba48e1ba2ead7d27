package calc

import (
	"fmt"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// Global marks a pair whose parent is the laboratory frame.
const Global = -1

// Pair selects the parent and child axis params of one angle output.
type Pair struct {
	Parent, Child int
}

// RelativeAngles returns an angle step that, for every pair, decomposes the
// child axis relative to the parent axis. A Parent of Global uses the
// laboratory frame.
func RelativeAngles(pairs ...Pair) domain.Func {
	return func(a domain.Args) ([]domain.Series, error) {
		out := make([]domain.AngleSeries, len(pairs))
		for i, p := range pairs {
			child := a.Axis(p.Child)
			if child == nil {
				return nil, fmt.Errorf("%w: axis param %d", ErrMissingInput, p.Child)
			}
			var parent domain.AxisSeries
			if p.Parent != Global {
				if parent = a.Axis(p.Parent); parent == nil {
					return nil, fmt.Errorf("%w: axis param %d", ErrMissingInput, p.Parent)
				}
			}
			s := make(domain.AngleSeries, len(child))
			for f := range s {
				ref := Identity
				if parent != nil {
					ref = parent[f]
				}
				s[f] = cardan(ref, child[f])
			}
			out[i] = s
		}
		return domain.Angles(out...), nil
	}
}
