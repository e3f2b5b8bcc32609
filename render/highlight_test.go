package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extpack/inspect/render"
)

const goSample = `package main

import "fmt"

// main prints a greeting.
func main() {
	fmt.Println("hello")
}
`

// concatText replays a fragment stream and returns the reconstructed text.
func concatText(frags []render.Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		if f.Cmd.Op == render.OpText {
			sb.WriteString(f.Cmd.Text)
		}
	}
	return sb.String()
}

func TestHighlightReconstructsSource(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	frags := e.Highlight([]byte(goSample), "go")

	assert.Equal(t, goSample, concatText(frags))
}

func TestHighlightEmitsStyleEvents(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	frags := e.Highlight([]byte(goSample), "go")

	var colors int
	for _, f := range frags {
		if f.Cmd.Op == render.OpColor {
			colors++
		}
	}
	assert.Greater(t, colors, 1, "expected colour changes across keywords, strings, and comments")
}

// TestHighlightRunLengthReduction checks that an attribute event is only
// emitted when the attribute actually changes.
func TestHighlightRunLengthReduction(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	frags := e.Highlight([]byte(goSample), "go")

	var last struct {
		bold, italic, underline bool
		color                   render.Color
	}
	for _, f := range frags {
		switch f.Cmd.Op {
		case render.OpBold:
			assert.NotEqual(t, last.bold, f.Cmd.On, "redundant bold event at %d", f.Offset)
			last.bold = f.Cmd.On
		case render.OpItalic:
			assert.NotEqual(t, last.italic, f.Cmd.On, "redundant italic event at %d", f.Offset)
			last.italic = f.Cmd.On
		case render.OpUnderline:
			assert.NotEqual(t, last.underline, f.Cmd.On, "redundant underline event at %d", f.Offset)
			last.underline = f.Cmd.On
		case render.OpColor:
			assert.NotEqual(t, last.color, f.Cmd.Color, "redundant colour event at %d", f.Offset)
			last.color = f.Cmd.Color
		}
	}
}

func TestHighlightUnknownExtensionFallsBackToRawText(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	src := "some opaque content"
	frags := e.Highlight([]byte(src), "zzz-no-such-grammar")

	require.Equal(t, []render.Fragment{render.Text(0, src)}, frags)
}

func TestHighlightInvalidUTF8FallsBackToRawText(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	src := []byte{0xff, 0xfe, 0x00, 0x61}
	frags := e.Highlight(src, "go")

	require.Len(t, frags, 1)
	assert.Equal(t, render.OpText, frags[0].Cmd.Op)
	assert.Equal(t, string(src), frags[0].Cmd.Text)
}

func TestHighlightEmptyFile(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	assert.Empty(t, e.Highlight([]byte{}, "go"))
}

func TestWithStyleUnknownNameStillHighlights(t *testing.T) {
	t.Parallel()

	e := render.NewEngine(render.WithStyle("no-such-style"))
	frags := e.Highlight([]byte(goSample), "go")
	assert.Equal(t, goSample, concatText(frags))
}
