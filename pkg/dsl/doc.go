/*
Package dsl provides a fluent builder for declaring calculation steps.

It produces domain.StepSpec values for Registry.Insert and Registry.Append,
and domain.Step values for builtin tables, without spelling out param
literals by hand.

Example usage:

	spec := dsl.Step("calc_axis_eye").
		Measurement("Bodymass", "HeadOffset").
		Marker("RFHD", "LFHD", "RBHD", "LBHD").
		Axis("Head").
		ReturnsAxes("REye", "LEye").
		Do(eyeAxis).
		Spec()

	err := reg.Insert(spec, "calc_axis_head", 1)
*/
package dsl
