package schema

import (
	"github.com/aretw0/gaitcgm/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrialBuffer holds the output columns of one trial. Columns are views into
// a flat arena, so steps that receive a column see later writes to it.
type TrialBuffer struct {
	schema     Schema
	frames     int
	axisArena  []domain.Transform
	angleArena []r3.Vec
	axes       map[string]domain.AxisSeries
	angles     map[string]domain.AngleSeries
	valid      bool
}

// Frames returns the row count of every column.
func (b *TrialBuffer) Frames() int { return b.frames }

// Schema returns the columns the buffer was built for.
func (b *TrialBuffer) Schema() Schema { return b.schema }

// Axis returns the live column of an axis output.
func (b *TrialBuffer) Axis(name string) (domain.AxisSeries, bool) {
	s, ok := b.axes[name]
	return s, ok
}

// Angle returns the live column of an angle output.
func (b *TrialBuffer) Angle(name string) (domain.AngleSeries, bool) {
	s, ok := b.angles[name]
	return s, ok
}

// Reset zeroes every column and marks the buffer as not yet computed.
func (b *TrialBuffer) Reset() {
	clear(b.axisArena)
	clear(b.angleArena)
	b.valid = false
}

// Valid reports whether the buffer holds the output of a successful run.
func (b *TrialBuffer) Valid() bool { return b.valid }

// MarkValid is called by the engine once every step has completed.
func (b *TrialBuffer) MarkValid() { b.valid = true }

// Invalidate discards the trust in the current values.
func (b *TrialBuffer) Invalidate() { b.valid = false }

// CopyAxes returns deep copies of every axis column.
func (b *TrialBuffer) CopyAxes() map[string]domain.AxisSeries {
	out := make(map[string]domain.AxisSeries, len(b.axes))
	for k, v := range b.axes {
		out[k] = append(domain.AxisSeries(nil), v...)
	}
	return out
}

// CopyAngles returns deep copies of every angle column.
func (b *TrialBuffer) CopyAngles() map[string]domain.AngleSeries {
	out := make(map[string]domain.AngleSeries, len(b.angles))
	for k, v := range b.angles {
		out[k] = append(domain.AngleSeries(nil), v...)
	}
	return out
}
