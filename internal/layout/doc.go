// Package layout holds the tables that describe a generated skeleton: the
// top-level files with their literal lines, the ordered directory list, and
// the per-directory stub file names. The built-in layout is an embedded YAML
// document; custom layouts use the same shape and pass through the same
// JSON Schema, version, and path confinement checks.
package layout
