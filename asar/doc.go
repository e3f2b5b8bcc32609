// Package asar decodes the asar extension-package archive format.
//
// An archive is a fixed 16-byte prefix (four little-endian uint32 fields),
// a JSON header describing the logical file tree, and a payload region of
// concatenated file contents. Decoding is all-or-nothing: a malformed
// header, a non-numeric file offset, or a truncated payload fails the
// whole decode and no partial tree is returned.
//
// The package is decode-only. [Decode] produces an in-memory [FileTree]
// and [Extract] materializes one to disk.
package asar
