package render

import (
	"log/slog"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the highlight style used when none is configured.
const DefaultStyle = "catppuccin-mocha"

// Engine produces render-ready fragment streams for changed files.
//
// The zero value is usable; NewEngine applies options. An Engine is safe
// for concurrent use across independent files.
type Engine struct {
	logger    *slog.Logger
	styleName string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for best-effort pass failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithStyle selects the highlight style by name. Unknown names fall back
// to chroma's default style.
func WithStyle(name string) Option {
	return func(e *Engine) {
		e.styleName = name
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// log returns the logger, falling back to a discard logger if nil.
func (e *Engine) log() *slog.Logger {
	if e.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.logger
}

// style resolves the configured highlight style from chroma's process-wide
// style registry.
func (e *Engine) style() *chroma.Style {
	name := e.styleName
	if name == "" {
		name = DefaultStyle
	}
	s := styles.Get(name)
	if s == nil {
		s = styles.Fallback
	}
	return s
}

// FileDiff holds the render instruction streams for both sides of one
// changed file.
type FileDiff struct {
	Old []Fragment
	New []Fragment
}

// DiffFile diffs two whole-file contents and returns both sides' fragment
// streams. A nil slice marks a missing side (an added or deleted file); an
// empty non-nil slice is an empty file. ext is the file-extension hint
// without the dot.
//
// The structural and syntax passes are each best-effort: a missing grammar
// or parse failure is logged and contributes no events. Content that is
// not valid text degrades both sides to a single raw Text fragment.
// DiffFile never fails.
func (e *Engine) DiffFile(oldSrc, newSrc []byte, ext string) FileDiff {
	switch {
	case oldSrc == nil && newSrc == nil:
		return FileDiff{}
	case oldSrc == nil:
		return FileDiff{New: e.Highlight(newSrc, ext)}
	case newSrc == nil:
		return FileDiff{Old: e.Highlight(oldSrc, ext)}
	}

	if !utf8.Valid(oldSrc) || !utf8.Valid(newSrc) {
		// Outside the two tolerated pass failures: degrade to raw text.
		e.log().Error("file content is not valid text, falling back to raw content", "ext", ext)
		return FileDiff{
			Old: []Fragment{Text(0, string(oldSrc))},
			New: []Fragment{Text(0, string(newSrc))},
		}
	}
	oldText := string(oldSrc)
	newText := string(newSrc)

	var oldEvents, newEvents []Fragment

	if frags, err := highlightEvents(oldText, ext, e.style()); err != nil {
		e.log().Error("highlighting old file failed", "ext", ext, "err", err)
	} else {
		oldEvents = append(oldEvents, frags...)
	}
	if frags, err := highlightEvents(newText, ext, e.style()); err != nil {
		e.log().Error("highlighting new file failed", "ext", ext, "err", err)
	} else {
		newEvents = append(newEvents, frags...)
	}

	if oldFrags, newFrags, err := structuralDiff(oldText, newText, ext); err != nil {
		e.log().Error("structural diff failed", "ext", ext, "err", err)
	} else {
		oldEvents = append(oldEvents, oldFrags...)
		newEvents = append(newEvents, newFrags...)
	}

	return FileDiff{
		Old: Cleanup(oldText, oldEvents),
		New: Cleanup(newText, newEvents),
	}
}

// Highlight returns the syntax-highlight-only fragment stream for a single
// file, used for added and deleted files where no structural comparison is
// possible. Failures degrade to a single raw Text fragment.
func (e *Engine) Highlight(src []byte, ext string) []Fragment {
	if !utf8.Valid(src) {
		e.log().Error("file content is not valid text, falling back to raw content", "ext", ext)
		return []Fragment{Text(0, string(src))}
	}
	text := string(src)

	events, err := highlightEvents(text, ext, e.style())
	if err != nil {
		e.log().Error("highlighting failed, falling back to raw text", "ext", ext, "err", err)
		return []Fragment{Text(0, text)}
	}
	return Cleanup(text, events)
}
