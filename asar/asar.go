package asar

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Sentinel errors returned by Decode. All are wrapped with positional
// context; match with errors.Is.
var (
	// ErrMalformedHeader is returned when the size fields or the header
	// JSON cannot be read or parsed.
	ErrMalformedHeader = errors.New("asar: malformed header")

	// ErrBadOffset is returned when a file entry carries a non-numeric
	// offset string.
	ErrBadOffset = errors.New("asar: non-numeric file offset")

	// ErrTruncated is returned when a file's payload extends past the end
	// of the byte source.
	ErrTruncated = errors.New("asar: truncated archive")
)

// headerPrefixSize is the size of the four uint32 size fields that precede
// the header JSON.
const headerPrefixSize = 16

// FileTree maps slash-separated relative paths (no leading slash) to raw
// file content. The caller owns the tree once Decode returns.
type FileTree map[string][]byte

// Entry is one node of the archive's logical header tree: either a
// directory with named children or a file locating its content in the
// payload region. The JSON encoding is untagged; UnmarshalJSON
// disambiguates by required-field presence.
type Entry struct {
	// Files holds the children of a directory entry. Nil for files.
	Files map[string]*Entry

	// Offset is the file's payload offset as a decimal string, relative
	// to the payload base. Empty for directories.
	Offset string

	// Size is the file's content size in bytes.
	Size uint64
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool { return e.Files != nil }

// UnmarshalJSON decodes the untagged two-variant entry shape. An object
// with a "files" mapping is a directory; an object with "offset" and
// "size" is a file. Field order is irrelevant.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Files  map[string]*Entry `json:"files"`
		Offset *string           `json:"offset"`
		Size   *uint64           `json:"size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Files != nil {
		e.Files = raw.Files
		return nil
	}
	if raw.Offset != nil && raw.Size != nil {
		e.Offset = *raw.Offset
		e.Size = *raw.Size
		return nil
	}
	return errors.New("entry is neither a directory nor a file")
}

// Decode reads an archive from src and returns its full file tree.
//
// The first two size fields are read only to keep the cursor arithmetic
// honest; the payload base depends solely on header_string_size. Decoding
// never returns a partial tree: the first failure aborts the decode.
func Decode(src io.ReaderAt) (FileTree, error) {
	var prefix [headerPrefixSize]byte
	if _, err := io.ReadFull(io.NewSectionReader(src, 0, headerPrefixSize), prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: reading size fields: %v", ErrMalformedHeader, err)
	}

	// payload_size and header_size occupy prefix[0:8]; the decoding logic
	// does not use their values.
	headerStringSize := binary.LittleEndian.Uint32(prefix[8:12])
	actualStringSize := binary.LittleEndian.Uint32(prefix[12:16])

	raw := make([]byte, actualStringSize)
	if _, err := io.ReadFull(io.NewSectionReader(src, headerPrefixSize, int64(actualStringSize)), raw); err != nil {
		return nil, fmt.Errorf("%w: reading header string: %v", ErrMalformedHeader, err)
	}

	var root Entry
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	// The payload base is headerStringStart + header_string_size + 4,
	// and headerStringStart is always 8.
	base := 8 + int64(headerStringSize) + 4

	out := make(FileTree)
	if err := walk(&root, src, base, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBytes decodes an archive held fully in memory.
func DecodeBytes(data []byte) (FileTree, error) {
	return Decode(bytes.NewReader(data))
}

// walk resolves entries depth-first, accumulating the relative path as an
// immutable string passed down each recursion.
func walk(e *Entry, src io.ReaderAt, base int64, path string, out FileTree) error {
	if e.IsDir() {
		for name, child := range e.Files {
			childPath := name
			if path != "" {
				childPath = path + "/" + name
			}
			if err := walk(child, src, base, childPath, out); err != nil {
				return err
			}
		}
		return nil
	}

	offset, err := strconv.ParseUint(e.Offset, 10, 63)
	if err != nil {
		return fmt.Errorf("%w: %q at %s", ErrBadOffset, e.Offset, path)
	}

	data := make([]byte, e.Size)
	if _, err := io.ReadFull(io.NewSectionReader(src, base+int64(offset), int64(e.Size)), data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTruncated, path, err)
	}
	out[path] = data
	return nil
}
