package treediff

import (
	"sort"
	"strings"
)

// Item is one node of the presentation tree. File and Dir are the only
// implementations.
type Item interface {
	isItem()
}

// File is a changed file at one directory level.
type File struct {
	Name  string
	State FileState
}

// Dir groups the children that share a leading path segment.
type Dir struct {
	Name     string
	Children []Item
}

func (File) isItem() {}
func (Dir) isItem()  {}

// Unflatten builds the nested presentation tree for the paths in states
// that live under prefix ("" selects the root). Paths without a slash at
// this level become files, the segment before the first slash of the rest
// becomes a deduplicated subdirectory, and each subdirectory is resolved
// recursively. Directories are emitted before files, each group sorted by
// name. Unflatten is a pure function of the flat map.
func Unflatten(states map[string]FileState, prefix string) []Item {
	var names []string
	for p := range states {
		if prefix == "" {
			names = append(names, p)
			continue
		}
		if rest, ok := strings.CutPrefix(p, prefix+"/"); ok {
			names = append(names, rest)
		}
	}
	sort.Strings(names)

	var files []string
	var dirs []string
	seen := make(map[string]bool)
	for _, n := range names {
		i := strings.IndexByte(n, '/')
		if i < 0 {
			files = append(files, n)
			continue
		}
		dir := n[:i]
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	items := make([]Item, 0, len(dirs)+len(files))
	for _, dir := range dirs {
		childPrefix := dir
		if prefix != "" {
			childPrefix = prefix + "/" + dir
		}
		items = append(items, Dir{Name: dir, Children: Unflatten(states, childPrefix)})
	}
	for _, f := range files {
		full := f
		if prefix != "" {
			full = prefix + "/" + f
		}
		items = append(items, File{Name: f, State: states[full]})
	}
	return items
}
