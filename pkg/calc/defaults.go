package calc

import (
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
)

// Builtin step names referenced by variants and configuration files.
const (
	StepPelvisAxis          = "calc_axis_pelvis"
	StepHipJointCenter      = "calc_joint_center_hip"
	StepHipAxis             = "calc_axis_hip"
	StepKneeAxis            = "calc_axis_knee"
	StepAnkleAxis           = "calc_axis_ankle"
	StepFootAxis            = "calc_axis_foot"
	StepHeadAxis            = "calc_axis_head"
	StepThoraxAxis          = "calc_axis_thorax"
	StepMarkerWand          = "calc_marker_wand"
	StepShoulderJointCenter = "calc_joint_center_shoulder"
	StepShoulderAxis        = "calc_axis_shoulder"
	StepElbowAxis           = "calc_axis_elbow"
	StepWristAxis           = "calc_axis_wrist"
	StepHandAxis            = "calc_axis_hand"

	StepPelvisAngle   = "calc_angle_pelvis"
	StepHipAngle      = "calc_angle_hip"
	StepKneeAngle     = "calc_angle_knee"
	StepAnkleAngle    = "calc_angle_ankle"
	StepFootAngle     = "calc_angle_foot"
	StepHeadAngle     = "calc_angle_head"
	StepThoraxAngle   = "calc_angle_thorax"
	StepNeckAngle     = "calc_angle_neck"
	StepSpineAngle    = "calc_angle_spine"
	StepShoulderAngle = "calc_angle_shoulder"
	StepElbowAngle    = "calc_angle_elbow"
	StepWristAngle    = "calc_angle_wrist"
)

// Defaults returns the builtin step table in execution order. Every call
// returns fresh values.
func Defaults() []domain.Step {
	return append(AxisDefaults(), AngleDefaults()...)
}

// AxisDefaults returns the builtin axis steps.
func AxisDefaults() []domain.Step {
	return []domain.Step{
		dsl.Step(StepPelvisAxis).
			Marker("RASI", "LASI", "RPSI", "LPSI", "SACR").
			ReturnsAxes("Pelvis").
			Do(PelvisAxis).MustBuild(),
		dsl.Step(StepHipJointCenter).
			Axis("Pelvis").
			Marker("RASI", "LASI").
			Measurement("MeanLegLength", "R_AsisToTrocanterMeasure", "L_AsisToTrocanterMeasure", "InterAsisDistance").
			ReturnsAxes("RHipJC", "LHipJC").
			Do(HipJointCenter).MustBuild(),
		dsl.Step(StepHipAxis).
			Axis("RHipJC", "LHipJC", "Pelvis").
			ReturnsAxes("Hip").
			Do(HipAxis).MustBuild(),
		dsl.Step(StepKneeAxis).
			Marker("RTHI", "LTHI", "RKNE", "LKNE").
			Axis("RHipJC", "LHipJC").
			Measurement("RightKneeWidth", "LeftKneeWidth").
			ReturnsAxes("RKnee", "LKnee").
			Do(KneeAxis).MustBuild(),
		dsl.Step(StepAnkleAxis).
			Marker("RTIB", "LTIB", "RANK", "LANK").
			Axis("RKnee", "LKnee").
			Measurement("RightAnkleWidth", "LeftAnkleWidth").
			ReturnsAxes("RAnkle", "LAnkle").
			Do(AnkleAxis).MustBuild(),
		dsl.Step(StepFootAxis).
			Marker("RTOE", "LTOE").
			Axis("RAnkle", "LAnkle").
			ReturnsAxes("RFoot", "LFoot").
			Do(FootAxis).MustBuild(),
		dsl.Step(StepHeadAxis).
			Marker("LFHD", "RFHD", "LBHD", "RBHD").
			ReturnsAxes("Head").
			Do(HeadAxis).MustBuild(),
		dsl.Step(StepThoraxAxis).
			Marker("CLAV", "C7", "STRN", "T10").
			ReturnsAxes("Thorax").
			Do(ThoraxAxis).MustBuild(),
		dsl.Step(StepMarkerWand).
			Marker("RSHO", "LSHO").
			Axis("Thorax").
			ReturnsAxes("RWand", "LWand").
			Do(MarkerWand).MustBuild(),
		dsl.Step(StepShoulderJointCenter).
			Marker("RSHO", "LSHO").
			Axis("Thorax", "RWand", "LWand").
			Measurement("RightShoulderOffset", "LeftShoulderOffset").
			ReturnsAxes("RClavJC", "LClavJC").
			Do(ShoulderJointCenter).MustBuild(),
		dsl.Step(StepShoulderAxis).
			Axis("Thorax", "RClavJC", "LClavJC", "RWand", "LWand").
			ReturnsAxes("RClav", "LClav").
			Do(ShoulderAxis).MustBuild(),
		dsl.Step(StepElbowAxis).
			Marker("RELB", "LELB", "RWRA", "RWRB", "LWRA", "LWRB").
			Axis("RClavJC", "LClavJC").
			Measurement("RightElbowWidth", "LeftElbowWidth", "RightWristWidth", "LeftWristWidth").
			ReturnsAxes("RHum", "LHum", "RWristJC", "LWristJC").
			Do(ElbowAxis).MustBuild(),
		dsl.Step(StepWristAxis).
			Axis("RHum", "LHum", "RWristJC", "LWristJC").
			ReturnsAxes("RRad", "LRad").
			Do(WristAxis).MustBuild(),
		dsl.Step(StepHandAxis).
			Marker("RFIN", "LFIN").
			Axis("RWristJC", "LWristJC").
			Measurement("RightHandThickness", "LeftHandThickness").
			ReturnsAxes("RHand", "LHand").
			Do(HandAxis).MustBuild(),
	}
}

// AngleDefaults returns the builtin angle steps.
func AngleDefaults() []domain.Step {
	return []domain.Step{
		dsl.Step(StepPelvisAngle).
			Axis("Pelvis").
			ReturnsAngles("Pelvis").
			Do(RelativeAngles(Pair{Global, 0})).MustBuild(),
		dsl.Step(StepHipAngle).
			Axis("Hip", "RKnee", "LKnee").
			ReturnsAngles("RHip", "LHip").
			Do(RelativeAngles(Pair{0, 1}, Pair{0, 2})).MustBuild(),
		dsl.Step(StepKneeAngle).
			Axis("RKnee", "LKnee", "RAnkle", "LAnkle").
			ReturnsAngles("RKnee", "LKnee").
			Do(RelativeAngles(Pair{0, 2}, Pair{1, 3})).MustBuild(),
		dsl.Step(StepAnkleAngle).
			Axis("RAnkle", "LAnkle", "RFoot", "LFoot").
			ReturnsAngles("RAnkle", "LAnkle").
			Do(RelativeAngles(Pair{0, 2}, Pair{1, 3})).MustBuild(),
		dsl.Step(StepFootAngle).
			Axis("Pelvis", "RFoot", "LFoot").
			ReturnsAngles("RFoot", "LFoot").
			Do(RelativeAngles(Pair{0, 1}, Pair{0, 2})).MustBuild(),
		dsl.Step(StepHeadAngle).
			Axis("Head").
			ReturnsAngles("Head").
			Do(RelativeAngles(Pair{Global, 0})).MustBuild(),
		dsl.Step(StepThoraxAngle).
			Axis("Thorax").
			ReturnsAngles("Thorax").
			Do(RelativeAngles(Pair{Global, 0})).MustBuild(),
		dsl.Step(StepNeckAngle).
			Axis("Thorax", "Head").
			ReturnsAngles("Neck").
			Do(RelativeAngles(Pair{0, 1})).MustBuild(),
		dsl.Step(StepSpineAngle).
			Axis("Pelvis", "Thorax").
			ReturnsAngles("Spine").
			Do(RelativeAngles(Pair{0, 1})).MustBuild(),
		dsl.Step(StepShoulderAngle).
			Axis("Thorax", "RHum", "LHum").
			ReturnsAngles("RShoulder", "LShoulder").
			Do(RelativeAngles(Pair{0, 1}, Pair{0, 2})).MustBuild(),
		dsl.Step(StepElbowAngle).
			Axis("RHum", "LHum", "RRad", "LRad").
			ReturnsAngles("RElbow", "LElbow").
			Do(RelativeAngles(Pair{0, 2}, Pair{1, 3})).MustBuild(),
		dsl.Step(StepWristAngle).
			Axis("RRad", "LRad", "RHand", "LHand").
			ReturnsAngles("RWrist", "LWrist").
			Do(RelativeAngles(Pair{0, 2}, Pair{1, 3})).MustBuild(),
	}
}
