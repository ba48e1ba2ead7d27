/*
Package calc holds the builtin calculation steps: axis steps that build
segment frames from marker trajectories and angle steps that decompose one
frame relative to another.

All steps work on whole trials. Missing optional inputs fall back to
estimates; missing required inputs fail with ErrMissingInput.
*/
package calc
