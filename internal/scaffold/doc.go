// Package scaffold generates a placeholder repository skeleton from a layout.
// It powers the root "skelgen" command: the previous output root is wiped, then
// top-level files, directories with their .gitkeep markers, and extension-keyed
// stub files are written in table order through a billy.Filesystem.
package scaffold
