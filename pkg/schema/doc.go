// Package schema derives per-trial output buffers from a registry plan.
//
// A Schema is the ordered list of axis and angle output names. Building a
// Schema for a frame count yields a zero-filled TrialBuffer with one column
// per name, backed by one flat arena per namespace:
//
//	s := schema.FromPlan(reg.Snapshot())
//	buf := s.Build(trial.Frames())
//	pelvis, _ := buf.Axis("Pelvis")
//
// Building is idempotent and destructive: a new buffer never carries values
// from an earlier one, so a schema change must be followed by a full run.
package schema
