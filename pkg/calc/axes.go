package calc

import (
	"fmt"
	"math"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// PelvisAxis builds the pelvis frame from the anterior and posterior iliac
// spine markers. The origin is the ASIS midpoint and y points from RASI to
// LASI. SACR is optional; without it the PSIS midpoint is used.
//
// Params: RASI, LASI, RPSI, LPSI, SACR markers.
func PelvisAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RASI", "LASI")
	if err != nil {
		return nil, err
	}
	rasi, lasi := m[0], m[1]

	sacr, ok := a.Marker(4)
	if !ok {
		post, err := markers(a, 2, "RPSI", "LPSI")
		if err != nil {
			return nil, fmt.Errorf("no SACR fallback: %w", err)
		}
		sacr = make(domain.Trajectory, len(rasi))
		for f := range sacr {
			sacr[f] = mid(post[0][f], post[1][f])
		}
	}

	out := make(domain.AxisSeries, len(rasi))
	for f := range out {
		o := mid(rasi[f], lasi[f])
		out[f] = frameYX(o, r3.Sub(lasi[f], rasi[f]), r3.Sub(o, sacr[f]))
	}
	return domain.Axes(out), nil
}

// HipJointCenter places both hip joint centres in the pelvis frame with the
// Davis regression. Missing ASIS-to-trochanter distances are estimated from
// leg length; a missing inter-ASIS distance is measured from the markers.
//
// Params: Pelvis axis; RASI, LASI markers; MeanLegLength,
// R_AsisToTrocanterMeasure, L_AsisToTrocanterMeasure, InterAsisDistance.
func HipJointCenter(a domain.Args) ([]domain.Series, error) {
	pelvis, err := needAxis(a, 0, "Pelvis")
	if err != nil {
		return nil, err
	}
	legLength, err := needMeasurement(a, 3, "MeanLegLength")
	if err != nil {
		return nil, err
	}
	estimated := 0.1288*legLength - 48.56
	rTroc := a.MeasurementOr(4, estimated)
	lTroc := a.MeasurementOr(5, estimated)
	interAsis, haveInterAsis := a.Measurement(6)
	rasi, _ := a.Marker(1)
	lasi, _ := a.Marker(2)
	if !haveInterAsis && (rasi == nil || lasi == nil) {
		return nil, fmt.Errorf("%w: InterAsisDistance or RASI/LASI", ErrMissingInput)
	}

	const (
		theta = 0.5
		beta  = 0.314
	)
	c := legLength*0.115 - 15.3

	right := make(domain.AxisSeries, len(pelvis))
	left := make(domain.AxisSeries, len(pelvis))
	for f, p := range pelvis {
		aa := interAsis / 2
		if !haveInterAsis {
			aa = r3.Norm(r3.Sub(lasi[f], rasi[f])) / 2
		}
		y := c*math.Sin(theta) - aa
		rp := r3.Vec{
			X: c*math.Cos(theta)*math.Sin(beta) - (rTroc+MarkerRadius)*math.Cos(beta),
			Y: y,
			Z: -c*math.Cos(theta)*math.Cos(beta) - (rTroc+MarkerRadius)*math.Sin(beta),
		}
		lp := r3.Vec{
			X: c*math.Cos(theta)*math.Sin(beta) - (lTroc+MarkerRadius)*math.Cos(beta),
			Y: -y,
			Z: -c*math.Cos(theta)*math.Cos(beta) - (lTroc+MarkerRadius)*math.Sin(beta),
		}
		right[f] = p.WithOrigin(local(p, rp))
		left[f] = p.WithOrigin(local(p, lp))
	}
	return domain.Axes(right, left), nil
}

// HipAxis centres the pelvis orientation between the two hip joint centres.
//
// Params: RHipJC, LHipJC, Pelvis axes.
func HipAxis(a domain.Args) ([]domain.Series, error) {
	ax, err := axes(a, 0, "RHipJC", "LHipJC", "Pelvis")
	if err != nil {
		return nil, err
	}
	out := make(domain.AxisSeries, len(ax[2]))
	for f := range out {
		out[f] = ax[2][f].WithOrigin(mid(ax[0][f].Origin(), ax[1][f].Origin()))
	}
	return domain.Axes(out), nil
}

// limbJoint computes a joint frame for both sides from a lateral wand marker,
// a joint marker, the proximal joint and a width measurement.
func limbJoint(a domain.Args, names [4]string, proxNames [2]string, widthIdx int) ([]domain.Series, error) {
	m, err := markers(a, 0, names[:]...)
	if err != nil {
		return nil, err
	}
	prox, err := axes(a, 4, proxNames[:]...)
	if err != nil {
		return nil, err
	}
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		wand, joint, proximal := m[side], m[side+2], prox[side]
		delta := a.MeasurementOr(widthIdx+side, 0)/2 + MarkerRadius
		out := make(domain.AxisSeries, len(joint))
		for f := range out {
			lateral := r3.Sub(wand[f], joint[f])
			jc := jointCenter(joint[f], lateral, proximal[f].Origin(), delta)
			out[f] = segmentFrame(jc, proximal[f].Origin(), lateral)
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// KneeAxis builds both knee frames.
//
// Params: RTHI, LTHI, RKNE, LKNE markers; RHipJC, LHipJC axes;
// RightKneeWidth, LeftKneeWidth.
func KneeAxis(a domain.Args) ([]domain.Series, error) {
	return limbJoint(a, [4]string{"RTHI", "LTHI", "RKNE", "LKNE"}, [2]string{"RHipJC", "LHipJC"}, 6)
}

// AnkleAxis builds both ankle frames.
//
// Params: RTIB, LTIB, RANK, LANK markers; RKnee, LKnee axes;
// RightAnkleWidth, LeftAnkleWidth.
func AnkleAxis(a domain.Args) ([]domain.Series, error) {
	return limbJoint(a, [4]string{"RTIB", "LTIB", "RANK", "LANK"}, [2]string{"RKnee", "LKnee"}, 6)
}

// FootAxis builds both foot frames at the toe markers.
//
// Params: RTOE, LTOE markers; RAnkle, LAnkle axes.
func FootAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RTOE", "LTOE")
	if err != nil {
		return nil, err
	}
	ankle, err := axes(a, 2, "RAnkle", "LAnkle")
	if err != nil {
		return nil, err
	}
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		out := make(domain.AxisSeries, len(m[side]))
		for f := range out {
			out[f] = segmentFrame(m[side][f], ankle[side][f].Origin(), ankle[side][f].Basis(1))
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// HeadAxis builds the head frame from the four head markers, x pointing from
// the back pair to the front pair.
//
// Params: LFHD, RFHD, LBHD, RBHD markers.
func HeadAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "LFHD", "RFHD", "LBHD", "RBHD")
	if err != nil {
		return nil, err
	}
	out := make(domain.AxisSeries, len(m[0]))
	for f := range out {
		front := mid(m[0][f], m[1][f])
		back := mid(m[2][f], m[3][f])
		out[f] = frameXY(front, r3.Sub(front, back), r3.Sub(m[0][f], m[1][f]))
	}
	return domain.Axes(out), nil
}

// ThoraxAxis builds the thorax frame at CLAV with z pointing up the trunk.
//
// Params: CLAV, C7, STRN, T10 markers.
func ThoraxAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "CLAV", "C7", "STRN", "T10")
	if err != nil {
		return nil, err
	}
	clav, c7, strn, t10 := m[0], m[1], m[2], m[3]
	out := make(domain.AxisSeries, len(clav))
	for f := range out {
		up := r3.Sub(mid(clav[f], c7[f]), mid(strn[f], t10[f]))
		forward := r3.Sub(mid(clav[f], strn[f]), mid(c7[f], t10[f]))
		out[f] = frameZX(clav[f], up, forward)
	}
	return domain.Axes(out), nil
}

// wandLength is the distance of the virtual shoulder wand ahead of the marker.
const wandLength = 50.0

// MarkerWand places a virtual wand marker in front of each shoulder marker,
// oriented with the thorax.
//
// Params: RSHO, LSHO markers; Thorax axis.
func MarkerWand(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RSHO", "LSHO")
	if err != nil {
		return nil, err
	}
	thorax, err := needAxis(a, 2, "Thorax")
	if err != nil {
		return nil, err
	}
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		out := make(domain.AxisSeries, len(thorax))
		for f, t := range thorax {
			out[f] = t.WithOrigin(r3.Add(m[side][f], r3.Scale(wandLength, t.Basis(0))))
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// ShoulderJointCenter offsets each shoulder marker towards the thorax.
//
// Params: RSHO, LSHO markers; Thorax, RWand, LWand axes;
// RightShoulderOffset, LeftShoulderOffset.
func ShoulderJointCenter(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RSHO", "LSHO")
	if err != nil {
		return nil, err
	}
	ax, err := axes(a, 2, "Thorax", "RWand", "LWand")
	if err != nil {
		return nil, err
	}
	thorax := ax[0]
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		delta := a.MeasurementOr(5+side, 0) + MarkerRadius
		wand := ax[1+side]
		out := make(domain.AxisSeries, len(thorax))
		for f, t := range thorax {
			lateral := r3.Sub(m[side][f], t.Origin())
			jc := jointCenter(m[side][f], lateral, wand[f].Origin(), delta)
			out[f] = t.WithOrigin(jc)
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// ShoulderAxis builds both clavicle frames.
//
// Params: Thorax, RClavJC, LClavJC, RWand, LWand axes.
func ShoulderAxis(a domain.Args) ([]domain.Series, error) {
	ax, err := axes(a, 0, "Thorax", "RClavJC", "LClavJC", "RWand", "LWand")
	if err != nil {
		return nil, err
	}
	thorax := ax[0]
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		jc, wand := ax[1+side], ax[3+side]
		out := make(domain.AxisSeries, len(thorax))
		for f, t := range thorax {
			o := jc[f].Origin()
			out[f] = segmentFrame(o, t.Origin(), r3.Sub(wand[f].Origin(), o))
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// ElbowAxis builds the humerus frames and the wrist joint centres.
// It returns four outputs: RHum, LHum, RWristJC, LWristJC.
//
// Params: RELB, LELB, RWRA, RWRB, LWRA, LWRB markers; RClavJC, LClavJC axes;
// RightElbowWidth, LeftElbowWidth, RightWristWidth, LeftWristWidth.
func ElbowAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RELB", "LELB", "RWRA", "RWRB", "LWRA", "LWRB")
	if err != nil {
		return nil, err
	}
	shoulder, err := axes(a, 6, "RClavJC", "LClavJC")
	if err != nil {
		return nil, err
	}
	hum := make([]domain.AxisSeries, 2)
	wrist := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		elb, wra, wrb := m[side], m[2+2*side], m[3+2*side]
		elbowDelta := a.MeasurementOr(8+side, 0)/2 + MarkerRadius
		wristDelta := a.MeasurementOr(10+side, 0) / 2
		h := make(domain.AxisSeries, len(elb))
		w := make(domain.AxisSeries, len(elb))
		for f := range elb {
			sjc := shoulder[side][f].Origin()
			across := r3.Sub(wra[f], wrb[f])
			ejc := jointCenter(elb[f], across, sjc, elbowDelta)
			h[f] = segmentFrame(ejc, sjc, across)

			wm := mid(wra[f], wrb[f])
			wjc := r3.Add(wm, r3.Scale(wristDelta, r3.Unit(r3.Sub(ejc, wm))))
			w[f] = segmentFrame(wjc, ejc, across)
		}
		hum[side], wrist[side] = h, w
	}
	return domain.Axes(hum[0], hum[1], wrist[0], wrist[1]), nil
}

// WristAxis builds both radius frames at the wrist joint centres.
//
// Params: RHum, LHum, RWristJC, LWristJC axes.
func WristAxis(a domain.Args) ([]domain.Series, error) {
	ax, err := axes(a, 0, "RHum", "LHum", "RWristJC", "LWristJC")
	if err != nil {
		return nil, err
	}
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		hum, wjc := ax[side], ax[2+side]
		out := make(domain.AxisSeries, len(hum))
		for f := range out {
			out[f] = segmentFrame(wjc[f].Origin(), hum[f].Origin(), hum[f].Basis(1))
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}

// HandAxis builds both hand frames between the finger marker and the wrist.
//
// Params: RFIN, LFIN markers; RWristJC, LWristJC axes;
// RightHandThickness, LeftHandThickness.
func HandAxis(a domain.Args) ([]domain.Series, error) {
	m, err := markers(a, 0, "RFIN", "LFIN")
	if err != nil {
		return nil, err
	}
	wrist, err := axes(a, 2, "RWristJC", "LWristJC")
	if err != nil {
		return nil, err
	}
	sides := make([]domain.AxisSeries, 2)
	for side := 0; side < 2; side++ {
		delta := a.MeasurementOr(4+side, 0)/2 + MarkerRadius
		out := make(domain.AxisSeries, len(m[side]))
		for f := range out {
			w := wrist[side][f]
			fin := m[side][f]
			o := r3.Add(fin, r3.Scale(delta, r3.Unit(r3.Sub(w.Origin(), fin))))
			out[f] = segmentFrame(o, w.Origin(), w.Basis(0))
		}
		sides[side] = out
	}
	return domain.Axes(sides...), nil
}
