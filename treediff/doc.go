// Package treediff reduces two directory trees to a classified change-set.
//
// Comparison happens in three steps: snapshot each root into a relative
// path → content digest map, classify every path as Added, Modified, or
// Removed by digest equality (unchanged files are omitted entirely), and
// unflatten the flat classification into a nested presentation tree.
// Timestamps, permissions, and listing order never influence the result.
package treediff
