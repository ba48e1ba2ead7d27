// Package persistence holds the encoding shared by result stores.
// Store wrappers live in the middleware subpackage.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/gaitcgm/internal/jsonfloat"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// JSONCodec stores results as JSON. Axes are row-major 3x4 matrices, and
// NaN or infinite values (a step reading a not-yet-computed column) are kept
// as the strings "NaN", "+Inf" and "-Inf".
type JSONCodec struct{}

type wireResult struct {
	Model        string                           `json:"model"`
	Trial        string                           `json:"trial"`
	Frames       int                              `json:"frames"`
	Markers      map[string][]jsonfloat.Vec3      `json:"markers"`
	Axes         map[string][][12]jsonfloat.Float `json:"axes"`
	Angles       map[string][]jsonfloat.Vec3      `json:"angles"`
	Measurements map[string]jsonfloat.Float       `json:"measurements"`
	AxisKeys     []string                         `json:"axis_keys"`
	AngleKeys    []string                         `json:"angle_keys"`
}

// Encode implements ports.ResultCodec.
func (JSONCodec) Encode(res *domain.Result) ([]byte, error) {
	w := wireResult{
		Model:     res.Model,
		Trial:     res.Trial,
		Frames:    res.Frames,
		AxisKeys:  res.AxisKeys,
		AngleKeys: res.AngleKeys,
	}
	if res.Markers != nil {
		w.Markers = make(map[string][]jsonfloat.Vec3, len(res.Markers))
		for k, v := range res.Markers {
			w.Markers[k] = vecsOut(v)
		}
	}
	if res.Axes != nil {
		w.Axes = make(map[string][][12]jsonfloat.Float, len(res.Axes))
		for k, s := range res.Axes {
			w.Axes[k] = axesOut(s)
		}
	}
	if res.Angles != nil {
		w.Angles = make(map[string][]jsonfloat.Vec3, len(res.Angles))
		for k, v := range res.Angles {
			w.Angles[k] = vecsOut(v)
		}
	}
	if res.Measurements != nil {
		w.Measurements = make(map[string]jsonfloat.Float, len(res.Measurements))
		for k, v := range res.Measurements {
			w.Measurements[k] = jsonfloat.Float(v)
		}
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

// Decode implements ports.ResultCodec.
func (JSONCodec) Decode(data []byte) (*domain.Result, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	res := &domain.Result{
		Model:     w.Model,
		Trial:     w.Trial,
		Frames:    w.Frames,
		AxisKeys:  w.AxisKeys,
		AngleKeys: w.AngleKeys,
	}
	if w.Markers != nil {
		res.Markers = make(map[string]domain.Trajectory, len(w.Markers))
		for k, v := range w.Markers {
			res.Markers[k] = domain.Trajectory(vecsIn(v))
		}
	}
	if w.Axes != nil {
		res.Axes = make(map[string]domain.AxisSeries, len(w.Axes))
		for k, s := range w.Axes {
			res.Axes[k] = axesIn(s)
		}
	}
	if w.Angles != nil {
		res.Angles = make(map[string]domain.AngleSeries, len(w.Angles))
		for k, v := range w.Angles {
			res.Angles[k] = domain.AngleSeries(vecsIn(v))
		}
	}
	if w.Measurements != nil {
		res.Measurements = make(map[string]float64, len(w.Measurements))
		for k, v := range w.Measurements {
			res.Measurements[k] = float64(v)
		}
	}
	return res, nil
}

func vecsOut(s []r3.Vec) []jsonfloat.Vec3 {
	if s == nil {
		return nil
	}
	out := make([]jsonfloat.Vec3, len(s))
	for i, v := range s {
		out[i] = jsonfloat.FromVec(v)
	}
	return out
}

func vecsIn(in []jsonfloat.Vec3) []r3.Vec {
	if in == nil {
		return nil
	}
	out := make([]r3.Vec, len(in))
	for i, v := range in {
		out[i] = v.Vec()
	}
	return out
}

func axesOut(s domain.AxisSeries) [][12]jsonfloat.Float {
	if s == nil {
		return nil
	}
	out := make([][12]jsonfloat.Float, len(s))
	for f, t := range s {
		for r := 0; r < 3; r++ {
			for c := 0; c < 4; c++ {
				out[f][r*4+c] = jsonfloat.Float(t[r][c])
			}
		}
	}
	return out
}

func axesIn(in [][12]jsonfloat.Float) domain.AxisSeries {
	if in == nil {
		return nil
	}
	out := make(domain.AxisSeries, len(in))
	for f, m := range in {
		for r := 0; r < 3; r++ {
			for c := 0; c < 4; c++ {
				out[f][r][c] = float64(m[r*4+c])
			}
		}
	}
	return out
}
