// Package cli defines the Cobra command tree for the skelgen CLI. The root
// command runs the generator; each other file registers one subcommand with
// the root. Commands delegate to internal packages for the work and only
// handle flag parsing and output formatting.
package cli
