// Package compiler builds executable BasilC programs from script lines.
// This file defines the CompileError type for structured error reporting.
package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Build error kinds. Line-level kinds live in the parser package.
var (
	ErrSpecialParseFailed = errors.New("statement rejected")
	ErrUnterminatedBlock  = errors.New("unclosed if statement")
)

// CompileError represents a rejected script with location information.
// errors.Is sees through it to the error kind.
type CompileError struct {
	// Err is the error kind (parser.Err* or compiler.Err*).
	Err error

	// Message is the human-readable error description.
	Message string

	// Line is the 1-indexed line number where the error occurred.
	Line int

	// Column is the 1-indexed column number, 0 when unknown.
	Column int

	// Content is the offending source line.
	Content string

	// Context contains the source lines around the error location.
	Context string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s at line %d: %s", e.Message, e.Line, e.Content)
	if e.Context != "" {
		msg += "\n" + e.Context
	}
	return msg
}

// Unwrap returns the error kind.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// GenerateErrorContext renders the source around an error location: 2 lines
// before and 2 lines after the error line, with line numbers and a pointer (^)
// under the error column.
//
// Parameters:
//   - lines: The source lines
//   - line: The 1-indexed line number of the error
//   - column: The 1-indexed column number of the error (0 points at the line start)
//
// Example output:
//
//	  2 | BasilC-define(x, 5)
//	  3 | BasilC-say(x is $x)
//	> 4 | BasilC-shout(hello)
//	    |        ^
//	  5 | BasilC-end()
func GenerateErrorContext(lines []string, line, column int) string {
	if len(lines) == 0 || line <= 0 || line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	lineNumWidth := len(fmt.Sprintf("%d", end))

	var buf strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		if lineNum != line {
			fmt.Fprintf(&buf, "  %*d | %s\n", lineNumWidth, lineNum, lines[i])
			continue
		}

		fmt.Fprintf(&buf, "> %*d | %s\n", lineNumWidth, lineNum, lines[i])
		pointerIndent := 2 + lineNumWidth + 3 // "> " + number + " | "
		if column > 0 {
			pointerIndent += column - 1
		}
		fmt.Fprintf(&buf, "%s^\n", strings.Repeat(" ", pointerIndent))
	}

	return buf.String()
}
