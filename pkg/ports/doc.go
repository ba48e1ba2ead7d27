/*
Package ports defines the driven ports (interfaces) of the gait pipeline.

These interfaces decouple the model from where trial data comes from, so the
same model runs against fixtures, generated walkers or a capture system's
exporter.

# Key Interfaces

  - MarkerSource: lists trials and yields each trial's marker trajectories.
  - MeasurementSource: yields the subject's scalar measurements.
  - ResultStore: publishes computed trial results for other processes.
  - ResultCodec: turns a result into the bytes a store keeps.
  - DistributedLocker: serialises publishers of the same model.

Run*Contract functions verify an implementation against these interfaces.
*/
package ports
