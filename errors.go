package inspect

import (
	"github.com/extpack/inspect/asar"
	"github.com/extpack/inspect/render"
)

// Errors re-exported from asar.
var (
	// ErrMalformedHeader is returned when an archive's size fields or
	// header JSON cannot be parsed.
	ErrMalformedHeader = asar.ErrMalformedHeader

	// ErrBadOffset is returned when an archive file entry carries a
	// non-numeric offset.
	ErrBadOffset = asar.ErrBadOffset

	// ErrTruncated is returned when an archive's payload ends early.
	ErrTruncated = asar.ErrTruncated
)

// Errors re-exported from render.
var (
	// ErrNoGrammar marks a file extension with no registered grammar.
	// The render passes recover from it internally; it is exported for
	// callers probing grammar support directly.
	ErrNoGrammar = render.ErrNoGrammar
)
