/*
Package runtime executes calculation plans against trial data.

The resolver binds every step's symbolic params to whole-trial values once
per trial. Axis and angle params alias live buffer columns, so a value written
by an earlier step is visible to every later step of the same pass.

The engine runs axis steps and then angle steps in plan order, validates what
each step returns and copies it into the trial buffer. It performs no
dependency checks: a step reading a column that has not been produced yet
sees zeros.
*/
package runtime
