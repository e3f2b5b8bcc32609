package render

import "sort"

// Cleanup merges raw annotation events into the final fragment stream.
//
// Events are stable-sorted by offset, then woven together with Text
// fragments covering every gap: before each event past the cursor, the
// intervening source bytes become one Text fragment; after the sweep the
// remainder of src becomes a final Text fragment. Events sharing an
// offset keep their input order. The result reconstructs src exactly when
// its Text fragments are concatenated.
//
// Event offsets must lie within [0, len(src)]. The input slice is not
// modified.
func Cleanup(src string, events []Fragment) []Fragment {
	sorted := make([]Fragment, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	out := make([]Fragment, 0, len(sorted)+1)
	pos := 0
	for _, ev := range sorted {
		if ev.Offset > pos {
			out = append(out, Text(pos, src[pos:ev.Offset]))
			pos = ev.Offset
		}
		out = append(out, ev)
	}
	if pos < len(src) {
		out = append(out, Text(pos, src[pos:]))
	}
	return out
}
