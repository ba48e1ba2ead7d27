// Package dataset holds the read-only inputs of a model: marker trajectories
// per trial and scalar measurements per subject.
package dataset
