package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/extpack/inspect/render"
	"github.com/extpack/inspect/treediff"
)

// highlightBackground marks structurally changed runs.
const highlightBackground = "#45475a"

// printFragments replays a fragment stream to w, translating the command
// state machine into ANSI-styled text.
func printFragments(w io.Writer, frags []render.Fragment) {
	var (
		bold, italic, underline, highlight bool
		color                              render.Color
	)
	for _, f := range frags {
		switch f.Cmd.Op {
		case render.OpText:
			style := lipgloss.NewStyle().
				Bold(bold).
				Italic(italic).
				Underline(underline)
			if color != (render.Color{}) {
				style = style.Foreground(lipgloss.Color(hexColor(color)))
			}
			if highlight {
				style = style.Background(lipgloss.Color(highlightBackground))
			}
			fmt.Fprint(w, style.Render(f.Cmd.Text))
		case render.OpHighlight:
			highlight = f.Cmd.On
		case render.OpBold:
			bold = f.Cmd.On
		case render.OpItalic:
			italic = f.Cmd.On
		case render.OpUnderline:
			underline = f.Cmd.On
		case render.OpColor:
			color = f.Cmd.Color
		}
	}
}

func hexColor(c render.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// printTree writes the change tree as an indented listing with one
// state-tagged line per entry.
func printTree(w io.Writer, items []treediff.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		switch v := item.(type) {
		case treediff.Dir:
			fmt.Fprintf(w, "%s%s/\n", indent, v.Name)
			printTree(w, v.Children, depth+1)
		case treediff.File:
			fmt.Fprintf(w, "%s%s (%s)\n", indent, v.Name, stateStyle(v.State).Render(v.State.String()))
		}
	}
}

func stateStyle(s treediff.FileState) lipgloss.Style {
	switch s {
	case treediff.Added:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	case treediff.Removed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	}
}
