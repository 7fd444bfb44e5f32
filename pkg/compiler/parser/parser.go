// Package parser turns one line of BasilC source into a resolved command and
// its argument list.
//
// Statement grammar:
//
//	[BasilC-]name(arg0[, arg1...])
//
// The closing parenthesis must be the last non-whitespace character. Blank
// lines, shebang lines ("#...") and comments ("#//..." or "BasilC#//...")
// produce no statement.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zurustar/basilc/pkg/opcode"
	"github.com/zurustar/basilc/pkg/vm"
)

// Parse error kinds. Use errors.Is to classify a *ParserError.
var (
	ErrMissingParenthesis    = errors.New("missing parenthesis")
	ErrInvalidCommand        = errors.New("invalid command")
	ErrArgumentCountMismatch = errors.New("argument count mismatch")
)

// ParserError is a rejected line.
type ParserError struct {
	Err     error  // one of the Err* kinds
	Message string // detail
	Column  int    // 1-indexed
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

// Unwrap returns the error kind.
func (e *ParserError) Unwrap() error {
	return e.Err
}

func newError(kind error, column int, format string, args ...any) *ParserError {
	return &ParserError{
		Err:     kind,
		Message: fmt.Sprintf(format, args...),
		Column:  column,
	}
}

// Statement is a successfully parsed line.
type Statement struct {
	Entry *vm.Entry
	Args  []string
}

// ParseLine parses a single line (without its terminator) against reg.
//
// Returns:
//   - *Statement: the resolved command, or nil for blank and comment lines
//   - error: a *ParserError when the line is rejected
func ParseLine(line string, reg *vm.Registry) (*Statement, error) {
	line = strings.TrimRight(line, " \t\r")

	if isIgnored(line) {
		return nil, nil
	}

	start := 0
	if strings.HasPrefix(line, opcode.Prefix+opcode.PrefixSeparator) {
		start = len(opcode.Prefix) + len(opcode.PrefixSeparator)
	}

	open := strings.IndexByte(line[start:], '(')
	if open < 0 {
		return nil, newError(ErrMissingParenthesis, len(line)+1, "expected '(' after command name")
	}
	open += start

	name := opcode.Cmd(line[start:open])
	entry, ok := reg.Lookup(name)
	if !ok {
		return nil, newError(ErrInvalidCommand, start+1, "unknown command %q", string(name))
	}

	if !strings.HasSuffix(line, ")") {
		return nil, newError(ErrMissingParenthesis, len(line)+1, "expected ')' at end of statement")
	}
	content := line[open+1 : len(line)-1]

	args, err := extractArgs(entry, content)
	if err != nil {
		err.Column = open + 1
		return nil, err
	}

	return &Statement{Entry: entry, Args: args}, nil
}

// isIgnored reports whether line is blank, a shebang or a comment.
func isIgnored(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	if strings.HasPrefix(line, opcode.ShebangMarker) {
		return true
	}
	return strings.HasPrefix(line, opcode.Prefix+opcode.CommentMarker)
}

// countArgs infers the number of supplied arguments from the text between
// the parentheses.
func countArgs(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, ",") + 1
}

// extractArgs applies the command's arity contract to content.
func extractArgs(entry *vm.Entry, content string) ([]string, *ParserError) {
	if entry.Arity.IsVariadic() {
		return []string{content}, nil
	}

	want := int(entry.Arity)
	got := countArgs(content)
	if got != want {
		return nil, newError(ErrArgumentCountMismatch, 0,
			"%s expects %d argument(s), got %d", entry.Name, want, got)
	}

	switch want {
	case 0:
		return []string{}, nil
	case 1:
		return []string{content}, nil
	}

	parts := strings.Split(content, ",")
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.TrimPrefix(parts[i], " ")
	}
	return parts, nil
}
