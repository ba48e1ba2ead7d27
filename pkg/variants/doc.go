/*
Package variants holds subject-specific model profiles.

A Profile pairs a registry.Variant, whose implementations replace builtin
steps of the same name, with a Setup function that reshapes the registry
(overriding params or inserting steps) before the first run.

The package also keeps the extension catalog: named step implementations
that configuration files can reference when inserting or appending steps.
*/
package variants
