package render

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// tokenSpan is one lexical leaf with its byte range in the source.
type tokenSpan struct {
	start, end int
	key        string
}

// lexSpans lexes src into its leaf token vector, recording each token's
// byte range and an identity key (type plus value) for the edit script.
func lexSpans(src, ext string) ([]tokenSpan, error) {
	tokens, err := tokenize(src, ext)
	if err != nil {
		return nil, err
	}
	spans := make([]tokenSpan, 0, len(tokens))
	offset := 0
	for _, tok := range tokens {
		end := offset + len(tok.Value)
		spans = append(spans, tokenSpan{
			start: offset,
			end:   end,
			key:   tok.Type.String() + "\x00" + tok.Value,
		})
		offset = end
	}
	return spans, nil
}

// structuralDiff computes the edit script between the leaf token vectors
// of both texts and returns SetHighlight pairs covering each contiguous
// changed range: true at the range's start byte offset, false at its end.
func structuralDiff(oldSrc, newSrc, ext string) (oldFrags, newFrags []Fragment, err error) {
	oldSpans, err := lexSpans(oldSrc, ext)
	if err != nil {
		return nil, nil, err
	}
	newSpans, err := lexSpans(newSrc, ext)
	if err != nil {
		return nil, nil, err
	}

	oldRunes, newRunes := encodeSpans(oldSpans, newSpans)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	oldFrags = markChanged(diffs, diffmatchpatch.DiffDelete, oldSpans)
	newFrags = markChanged(diffs, diffmatchpatch.DiffInsert, newSpans)
	return oldFrags, newFrags, nil
}

// encodeSpans maps each distinct token to a rune so the edit script runs
// over the leaf vector rather than raw bytes. Both sides share one
// vocabulary.
func encodeSpans(oldSpans, newSpans []tokenSpan) ([]rune, []rune) {
	vocab := make(map[string]rune)
	next := rune(1)
	encode := func(spans []tokenSpan) []rune {
		out := make([]rune, len(spans))
		for i, s := range spans {
			r, ok := vocab[s.key]
			if !ok {
				r = next
				vocab[s.key] = r
				next++
				// Runes in the surrogate range do not round-trip through
				// strings, which the diff algorithm relies on.
				if next == 0xD800 {
					next = 0xE000
				}
			}
			out[i] = r
		}
		return out
	}
	return encode(oldSpans), encode(newSpans)
}

// markChanged walks the edit script with a token cursor for one side,
// advancing on equal runs and on this side's change kind, and emits one
// highlight range per contiguous changed run.
func markChanged(diffs []diffmatchpatch.Diff, want diffmatchpatch.Operation, spans []tokenSpan) []Fragment {
	var frags []Fragment
	cursor := 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			cursor += n
		case want:
			if n == 0 {
				continue
			}
			start := spans[cursor].start
			end := spans[cursor+n-1].end
			frags = append(frags, SetHighlight(start, true), SetHighlight(end, false))
			cursor += n
		}
	}
	return frags
}
