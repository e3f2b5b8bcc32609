// Package render turns changed files into byte-accurate, style-annotated
// render instructions.
//
// Two independent annotation passes run over each side of a changed file:
// a structural pass that computes a token-level edit script and marks
// changed byte ranges, and a syntax pass that emits style changes at token
// boundaries. Both are best-effort; a missing grammar or a failed parse
// silently contributes zero events. The cleanup merge then weaves all
// events into one ordered fragment stream whose Text fragments reconstruct
// the source exactly, with zero gaps and zero overlaps.
//
// The engine's contract is that it always returns renderable output for
// any two byte buffers: inputs that cannot be processed degrade to a
// single raw Text fragment per side, never to an error.
package render
