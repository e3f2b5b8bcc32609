package render

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrNoGrammar is returned when no lexer is registered for a file
// extension. Both annotation passes treat it as "skip this pass".
var ErrNoGrammar = errors.New("render: no grammar for extension")

// lexerForExtension finds a lexer by file extension (without the dot).
// The lexer registry is chroma's process-wide table, loaded lazily and
// never mutated after first use.
func lexerForExtension(ext string) chroma.Lexer {
	if ext == "" {
		return nil
	}
	lexer := lexers.Match("file." + ext)
	if lexer == nil {
		lexer = lexers.Get(ext)
	}
	return lexer
}

// tokenize runs the extension's lexer over src and returns the token
// stream. Coalescing merges runs of identical token types so boundary
// events are emitted once per styled run, not once per character.
func tokenize(src, ext string) ([]chroma.Token, error) {
	lexer := lexerForExtension(ext)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoGrammar, ext)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return nil, fmt.Errorf("render: tokenise: %w", err)
	}
	return it.Tokens(), nil
}

// highlightEvents emits one SetBold/SetItalic/SetUnderline/SetColor event
// at each token start where the attribute differs from the previous token
// (run-length reduction). Offsets are cumulative byte offsets into src, so
// per-token ranges map back to whole-file positions.
func highlightEvents(src, ext string, style *chroma.Style) ([]Fragment, error) {
	tokens, err := tokenize(src, ext)
	if err != nil {
		return nil, err
	}

	var frags []Fragment
	var last struct {
		bold, italic, underline bool
		color                   Color
	}
	offset := 0
	for _, tok := range tokens {
		entry := style.Get(tok.Type)

		if bold := entry.Bold == chroma.Yes; bold != last.bold {
			frags = append(frags, SetBold(offset, bold))
			last.bold = bold
		}
		if italic := entry.Italic == chroma.Yes; italic != last.italic {
			frags = append(frags, SetItalic(offset, italic))
			last.italic = italic
		}
		if underline := entry.Underline == chroma.Yes; underline != last.underline {
			frags = append(frags, SetUnderline(offset, underline))
			last.underline = underline
		}
		if color := colorOf(entry.Colour); color != last.color {
			frags = append(frags, SetColor(offset, color))
			last.color = color
		}

		offset += len(tok.Value)
	}
	return frags, nil
}

// colorOf converts a chroma colour to a render colour. Unset colours map
// to the transparent zero value.
func colorOf(c chroma.Colour) Color {
	if !c.IsSet() {
		return Color{}
	}
	return Color{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}
