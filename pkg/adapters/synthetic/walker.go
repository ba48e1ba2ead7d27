// Package synthetic generates a deterministic walking subject with a full
// marker set. It is meant for demos, benchmarks and tests.
package synthetic

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

type segment int

const (
	trunk segment = iota
	rightLeg
	leftLeg
	rightArm
	leftArm
)

type templateMarker struct {
	pos r3.Vec
	seg segment
}

// template is the standing pose in millimetres, x forward, y left, z up.
var template = map[string]templateMarker{
	"RASI": {r3.Vec{X: 0, Y: -125, Z: 1000}, trunk},
	"LASI": {r3.Vec{X: 0, Y: 125, Z: 1000}, trunk},
	"RPSI": {r3.Vec{X: -150, Y: -50, Z: 1020}, trunk},
	"LPSI": {r3.Vec{X: -150, Y: 50, Z: 1020}, trunk},
	"SACR": {r3.Vec{X: -160, Y: 0, Z: 1010}, trunk},
	"RTHI": {r3.Vec{X: 20, Y: -230, Z: 720}, rightLeg},
	"LTHI": {r3.Vec{X: 20, Y: 230, Z: 720}, leftLeg},
	"RKNE": {r3.Vec{X: 0, Y: -160, Z: 500}, rightLeg},
	"LKNE": {r3.Vec{X: 0, Y: 160, Z: 500}, leftLeg},
	"RTIB": {r3.Vec{X: 10, Y: -220, Z: 300}, rightLeg},
	"LTIB": {r3.Vec{X: 10, Y: 220, Z: 300}, leftLeg},
	"RANK": {r3.Vec{X: -10, Y: -150, Z: 80}, rightLeg},
	"LANK": {r3.Vec{X: -10, Y: 150, Z: 80}, leftLeg},
	"RTOE": {r3.Vec{X: 150, Y: -120, Z: 40}, rightLeg},
	"LTOE": {r3.Vec{X: 150, Y: 120, Z: 40}, leftLeg},
	"LFHD": {r3.Vec{X: 100, Y: 70, Z: 1700}, trunk},
	"RFHD": {r3.Vec{X: 100, Y: -70, Z: 1700}, trunk},
	"LBHD": {r3.Vec{X: -80, Y: 70, Z: 1690}, trunk},
	"RBHD": {r3.Vec{X: -80, Y: -70, Z: 1690}, trunk},
	"CLAV": {r3.Vec{X: 60, Y: 0, Z: 1450}, trunk},
	"C7":   {r3.Vec{X: -70, Y: 0, Z: 1500}, trunk},
	"STRN": {r3.Vec{X: 80, Y: 0, Z: 1300}, trunk},
	"T10":  {r3.Vec{X: -90, Y: 0, Z: 1250}, trunk},
	"RSHO": {r3.Vec{X: 0, Y: -190, Z: 1450}, trunk},
	"LSHO": {r3.Vec{X: 0, Y: 190, Z: 1450}, trunk},
	"RELB": {r3.Vec{X: -20, Y: -220, Z: 1150}, rightArm},
	"LELB": {r3.Vec{X: -20, Y: 220, Z: 1150}, leftArm},
	"RWRA": {r3.Vec{X: 40, Y: -200, Z: 900}, rightArm},
	"RWRB": {r3.Vec{X: 0, Y: -230, Z: 900}, rightArm},
	"LWRA": {r3.Vec{X: 40, Y: 200, Z: 900}, leftArm},
	"LWRB": {r3.Vec{X: 0, Y: 230, Z: 900}, leftArm},
	"RFIN": {r3.Vec{X: 70, Y: -220, Z: 800}, rightArm},
	"LFIN": {r3.Vec{X: 70, Y: 220, Z: 800}, leftArm},
}

var pivots = map[segment]r3.Vec{
	rightLeg: {X: -50, Y: -85, Z: 905},
	leftLeg:  {X: -50, Y: 85, Z: 905},
	rightArm: {X: 0, Y: -190, Z: 1430},
	leftArm:  {X: 0, Y: 190, Z: 1430},
}

// DefaultMeasurements is the anthropometry of the generated subject.
func DefaultMeasurements() map[string]float64 {
	return map[string]float64{
		"Bodymass":            72,
		"Height":              1750,
		"MeanLegLength":       900,
		"InterAsisDistance":   250,
		"RightKneeWidth":      100,
		"LeftKneeWidth":       100,
		"RightAnkleWidth":     70,
		"LeftAnkleWidth":      70,
		"RightShoulderOffset": 40,
		"LeftShoulderOffset":  40,
		"RightElbowWidth":     70,
		"LeftElbowWidth":      70,
		"RightWristWidth":     50,
		"LeftWristWidth":      50,
		"RightHandThickness":  30,
		"LeftHandThickness":   30,
		"HeadOffset":          20,
	}
}

// Walker is a deterministic source of walking trials.
type Walker struct {
	frames       int
	rate         float64
	speed        float64
	cadence      float64
	swing        float64
	trials       []string
	omit         map[string]bool
	measurements map[string]float64
}

// Option configures a Walker.
type Option func(*Walker)

// WithFrames sets the frame count of the first trial. Every further trial
// is ten frames longer than the previous one.
func WithFrames(n int) Option {
	return func(w *Walker) { w.frames = n }
}

// WithRate sets the capture rate in Hz.
func WithRate(hz float64) Option {
	return func(w *Walker) { w.rate = hz }
}

// WithSpeed sets the walking speed in mm/s.
func WithSpeed(mmPerSecond float64) Option {
	return func(w *Walker) { w.speed = mmPerSecond }
}

// WithSwing sets the limb swing amplitude in degrees.
func WithSwing(deg float64) Option {
	return func(w *Walker) { w.swing = deg }
}

// WithTrials names the generated trials.
func WithTrials(names ...string) Option {
	return func(w *Walker) { w.trials = append([]string(nil), names...) }
}

// WithoutMarkers drops markers from every trial, as if they were occluded
// for the whole recording.
func WithoutMarkers(names ...string) Option {
	return func(w *Walker) {
		for _, n := range names {
			w.omit[n] = true
		}
	}
}

// WithMeasurement sets or overrides one measurement.
func WithMeasurement(name string, v float64) Option {
	return func(w *Walker) { w.measurements[name] = v }
}

// New creates a walker with two trials of 120 and 130 frames at 100 Hz.
func New(opts ...Option) *Walker {
	w := &Walker{
		frames:       120,
		rate:         100,
		speed:        1200,
		cadence:      1,
		swing:        20,
		trials:       []string{"walk_01", "walk_02"},
		omit:         map[string]bool{},
		measurements: DefaultMeasurements(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TrialNames returns the configured trial names.
func (w *Walker) TrialNames() ([]string, error) {
	return append([]string(nil), w.trials...), nil
}

// Measurements returns a copy of the subject's measurements.
func (w *Walker) Measurements() (map[string]float64, error) {
	out := make(map[string]float64, len(w.measurements))
	for k, v := range w.measurements {
		out[k] = v
	}
	return out, nil
}

// MarkerNames returns the generated marker names in sorted order.
func (w *Walker) MarkerNames() []string {
	out := make([]string, 0, len(template))
	for name := range template {
		if !w.omit[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Markers generates one trial. Each trial starts at a different gait phase.
func (w *Walker) Markers(trial string) (map[string]domain.Trajectory, error) {
	idx := -1
	for i, name := range w.trials {
		if name == trial {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrial, trial)
	}

	frames := w.frames + 10*idx
	phase0 := float64(idx) * math.Pi / 3
	out := make(map[string]domain.Trajectory, len(template))
	for _, name := range w.MarkerNames() {
		out[name] = make(domain.Trajectory, frames)
	}

	for f := 0; f < frames; f++ {
		t := float64(f) / w.rate
		phase := 2*math.Pi*w.cadence*t + phase0
		shift := r3.Vec{X: w.speed * t, Z: 10 * math.Sin(2*phase)}
		swing := w.swing * math.Pi / 180 * math.Sin(phase)

		angles := map[segment]float64{
			rightLeg: swing,
			leftLeg:  -swing,
			rightArm: -swing / 2,
			leftArm:  swing / 2,
		}
		for name, traj := range out {
			m := template[name]
			p := m.pos
			if m.seg != trunk {
				p = rotateY(p, pivots[m.seg], angles[m.seg])
			}
			traj[f] = r3.Add(p, shift)
		}
	}
	return out, nil
}

// rotateY rotates p about the y axis through pivot.
func rotateY(p, pivot r3.Vec, rad float64) r3.Vec {
	d := r3.Sub(p, pivot)
	c, s := math.Cos(rad), math.Sin(rad)
	return r3.Add(pivot, r3.Vec{X: d.X*c + d.Z*s, Y: d.Y, Z: -d.X*s + d.Z*c})
}
