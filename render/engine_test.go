package render_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extpack/inspect/render"
)

func TestDiffFileMissingOldSide(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	d := e.DiffFile(nil, []byte(goSample), "go")

	assert.Empty(t, d.Old)
	assert.Equal(t, goSample, concatText(d.New))
	assert.Empty(t, highlightRanges(d.New), "no structural diff for a new file")
}

func TestDiffFileMissingNewSide(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	d := e.DiffFile([]byte(goSample), nil, "go")

	assert.Empty(t, d.New)
	assert.Equal(t, goSample, concatText(d.Old))
}

func TestDiffFileBothSidesMissing(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()
	d := e.DiffFile(nil, nil, "go")
	assert.Empty(t, d.Old)
	assert.Empty(t, d.New)
}

func TestDiffFileUnknownExtensionDegradesToRawText(t *testing.T) {
	t.Parallel()

	oldSrc := "old content"
	newSrc := "new content"

	e := render.NewEngine(render.WithLogger(slog.New(slog.DiscardHandler)))
	d := e.DiffFile([]byte(oldSrc), []byte(newSrc), "zzz-no-such-grammar")

	require.Equal(t, []render.Fragment{render.Text(0, oldSrc)}, d.Old)
	require.Equal(t, []render.Fragment{render.Text(0, newSrc)}, d.New)
}

func TestDiffFileInvalidTextDegradesToRawContent(t *testing.T) {
	t.Parallel()

	oldSrc := []byte{0x00, 0xff, 0xfe}
	newSrc := []byte("valid")

	e := render.NewEngine()
	d := e.DiffFile(oldSrc, newSrc, "go")

	require.Len(t, d.Old, 1)
	require.Len(t, d.New, 1)
	assert.Equal(t, string(oldSrc), d.Old[0].Cmd.Text)
	assert.Equal(t, "valid", d.New[0].Cmd.Text)
}

func TestDiffFileEmptySides(t *testing.T) {
	t.Parallel()

	e := render.NewEngine()

	// Present-but-empty is not the same as missing.
	d := e.DiffFile([]byte{}, []byte("a := 1\n"), "go")
	assert.Empty(t, concatText(d.Old))
	assert.Equal(t, "a := 1\n", concatText(d.New))
	assert.True(t, covered(highlightRanges(d.New), 0), "entire new file is an insertion")
}

func TestDiffFileReconstructionInvariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		old  string
		new  string
		ext  string
	}{
		{"go sources", goSample, "package main\n\nfunc main() {}\n", "go"},
		{"javascript", "const a = 1;\n", "const a = 2;\nconst b = 3;\n", "js"},
		{"json", `{"a":1}`, `{"a":1,"b":2}`, "json"},
		{"plain text no grammar", "alpha\n", "beta\n", "txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := render.NewEngine()
			d := e.DiffFile([]byte(tt.old), []byte(tt.new), tt.ext)
			assert.Equal(t, tt.old, concatText(d.Old))
			assert.Equal(t, tt.new, concatText(d.New))
		})
	}
}
