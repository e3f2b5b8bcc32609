package render

// Op identifies the kind of a render command.
type Op uint8

const (
	// OpText carries a literal run of source text.
	OpText Op = iota
	// OpHighlight toggles the structural-diff change marker.
	OpHighlight
	// OpBold toggles bold type.
	OpBold
	// OpItalic toggles italic type.
	OpItalic
	// OpUnderline toggles underlining.
	OpUnderline
	// OpColor sets the foreground colour.
	OpColor
)

// Color is an 8-bit-per-channel RGBA foreground colour. The zero value
// means "no colour" and is the highlighter's initial state.
type Color struct {
	R, G, B, A uint8
}

// Command is a single render instruction. Op selects which field is
// meaningful: Text for OpText, On for the toggles, Color for OpColor.
type Command struct {
	Op    Op
	On    bool
	Color Color
	Text  string
}

// Fragment pairs a byte offset into the rendered text with a command.
// Offsets refer to the whole file, never to a single line.
type Fragment struct {
	Offset int
	Cmd    Command
}

// Text builds a literal-text fragment.
func Text(offset int, s string) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpText, Text: s}}
}

// SetHighlight builds a structural-diff marker fragment.
func SetHighlight(offset int, on bool) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpHighlight, On: on}}
}

// SetBold builds a bold toggle fragment.
func SetBold(offset int, on bool) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpBold, On: on}}
}

// SetItalic builds an italic toggle fragment.
func SetItalic(offset int, on bool) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpItalic, On: on}}
}

// SetUnderline builds an underline toggle fragment.
func SetUnderline(offset int, on bool) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpUnderline, On: on}}
}

// SetColor builds a foreground colour fragment.
func SetColor(offset int, c Color) Fragment {
	return Fragment{Offset: offset, Cmd: Command{Op: OpColor, Color: c}}
}
