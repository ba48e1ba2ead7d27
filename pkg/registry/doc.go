/*
Package registry holds the ordered calculation steps of a model.

Axis steps and angle steps live in two independent namespaces. Each namespace
keeps its steps in execution order together with a name to index map and the
flat list of declared output names, which drives the shape of the output
buffers.

The registry starts empty, is filled with RegisterDefaults and may then be
changed with Override, Insert and Append. Each change is validated on a copy
and swapped in atomically; a rejected change leaves the registry untouched.
Snapshot and BeginRun hand out immutable Plans for execution, and while a run
is in flight every mutation fails with domain.ErrRunInProgress.

A Variant supplies same-named implementations that replace builtin ones:

	reg := registry.New(registry.WithVariant(registry.Variant{
		Name: "custom-pelvis",
		Impl: map[string]domain.Func{"calc_axis_pelvis": myPelvis},
	}))
	err := reg.RegisterDefaults(calc.Defaults())
*/
package registry
