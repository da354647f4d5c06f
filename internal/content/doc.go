// Package content maps a file's extension to the placeholder text written into
// a generated stub. Every lookup is an exact, case-sensitive match on the
// extension; names without a known extension get a generic two-line stub.
package content
