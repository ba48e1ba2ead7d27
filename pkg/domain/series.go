package domain

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Series is a whole-trial output column produced by a step.
type Series interface {
	Frames() int
}

// Trajectory is the per-frame position of one marker.
type Trajectory []r3.Vec

// Frames returns the number of frames in the trajectory.
func (t Trajectory) Frames() int { return len(t) }

// Transform is a rigid frame stored as the top three rows of a 4x4
// homogeneous matrix. Rows 0..2 hold the x, y and z unit basis vectors in the
// first three columns; column 3 holds the origin.
type Transform [3][4]float64

// NewTransform assembles a transform from its basis vectors and origin.
func NewTransform(x, y, z, origin r3.Vec) Transform {
	return Transform{
		{x.X, x.Y, x.Z, origin.X},
		{y.X, y.Y, y.Z, origin.Y},
		{z.X, z.Y, z.Z, origin.Z},
	}
}

// Basis returns basis vector i (0 = x, 1 = y, 2 = z).
func (t Transform) Basis(i int) r3.Vec {
	return r3.Vec{X: t[i][0], Y: t[i][1], Z: t[i][2]}
}

// Origin returns the translation column.
func (t Transform) Origin() r3.Vec {
	return r3.Vec{X: t[0][3], Y: t[1][3], Z: t[2][3]}
}

// WithOrigin returns a copy of t translated to origin.
func (t Transform) WithOrigin(origin r3.Vec) Transform {
	t[0][3], t[1][3], t[2][3] = origin.X, origin.Y, origin.Z
	return t
}

// Homogeneous returns the full 4x4 matrix.
func (t Transform) Homogeneous() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, t[r][c])
		}
	}
	m.Set(3, 3, 1)
	return m
}

// AxisSeries is one axis output over a whole trial.
type AxisSeries []Transform

// Frames returns the number of frames in the series.
func (s AxisSeries) Frames() int { return len(s) }

// AngleSeries is one angle output over a whole trial, in degrees.
type AngleSeries []r3.Vec

// Frames returns the number of frames in the series.
func (s AngleSeries) Frames() int { return len(s) }

// Axes packs axis outputs into the slice form returned by a Func.
func Axes(outputs ...AxisSeries) []Series {
	out := make([]Series, len(outputs))
	for i, o := range outputs {
		out[i] = o
	}
	return out
}

// Angles packs angle outputs into the slice form returned by a Func.
func Angles(outputs ...AngleSeries) []Series {
	out := make([]Series, len(outputs))
	for i, o := range outputs {
		out[i] = o
	}
	return out
}

// Identity returns the laboratory frame: unit axes at the origin.
func Identity() Transform {
	return NewTransform(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{})
}
