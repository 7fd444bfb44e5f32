// Package opcode defines the built-in command names of the BasilC language.
// This package is the foundation that the compiler, the VM and the built-in
// command library depend on, so that the control-flow markers the engine
// looks for are spelled in exactly one place.
package opcode

// Cmd represents a command name as it appears in a script statement.
type Cmd string

// Prefix is the optional language-name prefix of a statement ("BasilC-say(...)").
const Prefix = "BasilC"

// Statement and comment markers.
const (
	// PrefixSeparator joins the language prefix and the command name.
	PrefixSeparator = "-"

	// CommentMarker starts a comment line, optionally after Prefix.
	CommentMarker = "#//"

	// ShebangMarker starts a shebang line. Every line starting with it is ignored.
	ShebangMarker = "#"
)

// Built-in commands.
const (
	// Say prints its (interpolated) text followed by a newline.
	// Args: [text] (variadic, commas kept)
	Say Cmd = "say"

	// SayLn prints its (interpolated) text followed by a newline.
	// Args: [text] (variadic, commas kept)
	SayLn Cmd = "sayln"

	// Tint sets the foreground colour for subsequent output.
	// Args: [colour]
	Tint Cmd = "tint"

	// TintBg sets the background colour for subsequent output.
	// Args: [colour]
	TintBg Cmd = "tintbg"

	// Ask prints a prompt and reads a line from stdin into a defined variable.
	// Args: [prompt, variable]
	Ask Cmd = "ask"

	// Yolo runs its text as a host shell command.
	// Args: [command] (variadic, commas kept)
	Yolo Cmd = "yolo"

	// Naptime sleeps for the given number of seconds.
	// Args: [seconds]
	Naptime Cmd = "naptime"

	// Define binds a value to a variable name.
	// Args: [name, value]
	Define Cmd = "define"

	// If opens a conditional block.
	// Args: [condition]
	If Cmd = "if"

	// EndIf closes a conditional block. It is never executed.
	// Args: []
	EndIf Cmd = "endif"

	// Label marks a jump target.
	// Args: [name]
	Label Cmd = "label"

	// Goto jumps to the first label with the given name.
	// Args: [name]
	Goto Cmd = "goto"

	// End terminates the program.
	// Args: []
	End Cmd = "end"
)

// String returns the command name.
func (c Cmd) String() string {
	return string(c)
}
