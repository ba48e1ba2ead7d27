/*
Package domain contains the core types of the gait calculation pipeline.

It defines what a calculation step is, how its parameters are referenced
symbolically, and the whole-trial numeric series that steps consume and
produce. The package is kept free of I/O and of any registry or execution
logic, so every other layer can depend on it.

# Key Entities

  - Param: a symbolic reference to a measurement, marker, axis, angle or constant.
  - Step: a named calculation with ordered params, ordered outputs and a Func.
  - StepSpec: a user-declared step whose namespace is derived from its return declarations.
  - Trajectory, AxisSeries, AngleSeries: per-frame marker positions, transforms and angles.
  - Result: the read-only snapshot produced for one trial after a successful run.
*/
package domain
