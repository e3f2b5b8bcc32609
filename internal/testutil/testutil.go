// Package testutil builds archive and directory fixtures for tests.
package testutil

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"
)

// BuildArchive constructs a well-formed archive image containing files.
// Offsets are assigned in sorted path order and header_string_size is set
// so the payload starts immediately after the header JSON.
func BuildArchive(tb testing.TB, files map[string][]byte) []byte {
	tb.Helper()

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	root := map[string]any{"files": map[string]any{}}
	var payload []byte
	for _, p := range paths {
		data := files[p]
		insertEntry(root, p, map[string]any{
			"offset": strconv.Itoa(len(payload)),
			"size":   len(data),
		})
		payload = append(payload, data...)
	}

	headerJSON, err := json.Marshal(root)
	if err != nil {
		tb.Fatalf("marshaling header: %v", err)
	}

	// header_string_size = actual_string_size + 4 places the payload base
	// (8 + header_string_size + 4) right after the JSON region.
	return BuildArchiveRaw(headerJSON, uint32(len(headerJSON))+4, payload)
}

// BuildArchiveRaw assembles an archive image with full control over the
// declared header string size, for fixtures where the declared and actual
// sizes disagree. The payload is placed at 8 + headerStringSize + 4,
// zero-padding the gap after the JSON region when the declared size
// exceeds the actual one.
func BuildArchiveRaw(headerJSON []byte, headerStringSize uint32, payload []byte) []byte {
	actual := uint32(len(headerJSON))

	var prefix [16]byte
	binary.LittleEndian.PutUint32(prefix[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint32(prefix[4:8], headerStringSize+8)
	binary.LittleEndian.PutUint32(prefix[8:12], headerStringSize)
	binary.LittleEndian.PutUint32(prefix[12:16], actual)

	buf := append([]byte{}, prefix[:]...)
	buf = append(buf, headerJSON...)

	base := 8 + int(headerStringSize) + 4
	for len(buf) < base {
		buf = append(buf, 0)
	}
	return append(buf, payload...)
}

// insertEntry places a file entry into the nested header structure,
// creating intermediate directories.
func insertEntry(root map[string]any, path string, entry map[string]any) {
	node := root
	segments := splitPath(path)
	for _, seg := range segments[:len(segments)-1] {
		children := node["files"].(map[string]any)
		child, ok := children[seg].(map[string]any)
		if !ok {
			child = map[string]any{"files": map[string]any{}}
			children[seg] = child
		}
		node = child
	}
	node["files"].(map[string]any)[segments[len(segments)-1]] = entry
}

func splitPath(path string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			segments = append(segments, path[start:i])
			start = i + 1
		}
	}
	return append(segments, path[start:])
}

// WriteTree writes files (relative slash paths to content) under dir.
func WriteTree(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()
	for p, content := range files {
		dest := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			tb.Fatalf("creating %s: %v", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
			tb.Fatalf("writing %s: %v", dest, err)
		}
	}
}
