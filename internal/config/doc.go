// Package config manages user-level settings stored at ~/.skelgen/config.yaml
// and SKELGEN_* environment variables: where the output root is created, how
// path collisions are handled, which layout file to use, and whether
// per-path progress is printed.
package config
