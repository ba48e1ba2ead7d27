/*
Package gaitcgm computes anatomical axes and joint angles from motion-capture
marker trajectories, for gait analysis.

The heart of the package is an extensible calculation pipeline. A Model owns
an ordered registry of named steps, split into an axis namespace and an angle
namespace. Each step declares symbolic params (measurements, markers, earlier
axes or angles, constants) and the outputs it produces. Before a run, every
param is bound to whole-trial data; the engine then executes the steps in
order and writes each output into a per-trial buffer whose columns are
derived from the registry's current output names.

# Concept

The registry can be reshaped before running: a step's params can be
overridden, custom steps can be inserted relative to an existing step or
appended to their namespace. Every mutation is validated and applied
atomically, and the model rebuilds its buffers and bindings afterwards.
Subject-specific variants swap builtin implementations by step name.

# Usage

	src := synthetic.New()
	data, err := dataset.Build("S01", src, src)
	if err != nil {
		log.Fatal(err)
	}

	model, err := gaitcgm.New(data, gaitcgm.WithProfile(variants.EyeAxis))
	if err != nil {
		log.Fatal(err)
	}

	// Place a custom step right after the hip joint centres.
	spec := dsl.Step("calc_axis_mid_hip").
		Axis("RHipJC", "LHipJC").
		ReturnsAxes("MidHip").
		Do(midHip).
		Spec()
	if err := model.Insert(spec, "calc_joint_center_hip", 2); err != nil {
		log.Fatal(err)
	}

	results, err := model.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Println(r.Trial, r.Angles["RKnee"][0])
	}

Several independent models can be run together with a Batch, optionally in
parallel.
*/
package gaitcgm
