package render_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extpack/inspect/render"
)

func TestCleanupNoEvents(t *testing.T) {
	t.Parallel()

	tests := []string{"", "x", "hello world\n", "line1\nline2\n"}
	for _, src := range tests {
		frags := render.Cleanup(src, nil)
		if src == "" {
			assert.Empty(t, frags)
			continue
		}
		require.Len(t, frags, 1)
		assert.Equal(t, render.Text(0, src), frags[0])
	}
}

func TestCleanupWeavesEventsBetweenText(t *testing.T) {
	t.Parallel()

	src := "abcdef"
	events := []render.Fragment{
		render.SetBold(2, true),
		render.SetBold(4, false),
	}

	frags := render.Cleanup(src, events)
	require.Equal(t, []render.Fragment{
		render.Text(0, "ab"),
		render.SetBold(2, true),
		render.Text(2, "cd"),
		render.SetBold(4, false),
		render.Text(4, "ef"),
	}, frags)
}

func TestCleanupSameOffsetEventsKeepInputOrder(t *testing.T) {
	t.Parallel()

	src := "abc"
	events := []render.Fragment{
		render.SetHighlight(1, true),
		render.SetBold(1, true),
		render.SetColor(1, render.Color{R: 1, A: 255}),
	}

	frags := render.Cleanup(src, events)
	require.Len(t, frags, 5)
	assert.Equal(t, render.Text(0, "a"), frags[0])
	assert.Equal(t, render.OpHighlight, frags[1].Cmd.Op)
	assert.Equal(t, render.OpBold, frags[2].Cmd.Op)
	assert.Equal(t, render.OpColor, frags[3].Cmd.Op)
	assert.Equal(t, render.Text(1, "bc"), frags[4])
}

func TestCleanupEventAtEnd(t *testing.T) {
	t.Parallel()

	src := "ab"
	frags := render.Cleanup(src, []render.Fragment{render.SetBold(2, false)})
	require.Equal(t, []render.Fragment{
		render.Text(0, "ab"),
		render.SetBold(2, false),
	}, frags)
}

func TestCleanupUnsortedInput(t *testing.T) {
	t.Parallel()

	src := "abcd"
	events := []render.Fragment{
		render.SetItalic(3, true),
		render.SetBold(1, true),
	}

	frags := render.Cleanup(src, events)
	require.Equal(t, []render.Fragment{
		render.Text(0, "a"),
		render.SetBold(1, true),
		render.Text(1, "bc"),
		render.SetItalic(3, true),
		render.Text(3, "d"),
	}, frags)
}

// TestCleanupReconstructsSource is the randomized property: for any mix of
// events, including repeated offsets and offsets at 0 and len(src), the
// concatenation of all Text fragments equals the source exactly, and style
// events never land inside a Text run.
func TestCleanupReconstructsSource(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	sources := []string{"", "a", "package main\n\nfunc main() {}\n", strings.Repeat("xy", 40)}

	for trial := 0; trial < 200; trial++ {
		src := sources[rng.Intn(len(sources))]

		var events []render.Fragment
		for n := rng.Intn(10); n > 0; n-- {
			var offset int
			switch rng.Intn(4) {
			case 0:
				offset = 0
			case 1:
				offset = len(src)
			default:
				offset = rng.Intn(len(src) + 1)
			}
			switch rng.Intn(3) {
			case 0:
				events = append(events, render.SetHighlight(offset, rng.Intn(2) == 0))
			case 1:
				events = append(events, render.SetBold(offset, rng.Intn(2) == 0))
			default:
				events = append(events, render.SetColor(offset, render.Color{R: uint8(rng.Intn(256)), A: 255}))
			}
		}

		frags := render.Cleanup(src, events)

		var sb strings.Builder
		pos := -1
		for _, f := range frags {
			if f.Cmd.Op == render.OpText {
				assert.Equal(t, sb.Len(), f.Offset, "Text fragment offset must equal bytes emitted so far")
				sb.WriteString(f.Cmd.Text)
				assert.NotEqual(t, pos, f.Offset, "two Text fragments must not share an offset")
				pos = f.Offset
			}
		}
		require.Equal(t, src, sb.String(), "trial %d with %d events", trial, len(events))
	}
}
