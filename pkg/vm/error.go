// Package vm provides error handling for the BasilC virtual machine.
package vm

import (
	"errors"
	"fmt"

	"github.com/zurustar/basilc/pkg/opcode"
)

// ErrorType represents the type of runtime error.
type ErrorType string

// Every runtime error is fatal: the execution loop stops at the first one.
const (
	ErrorUnknownCommand     ErrorType = "UNKNOWN_COMMAND"
	ErrorHandlerFailure     ErrorType = "HANDLER_FAILURE"
	ErrorInvalidConditional ErrorType = "INVALID_CONDITIONAL"
)

// Causes reported by built-in handlers.
var (
	ErrLabelNotFound      = errors.New("label not found")
	ErrUndefinedVariable  = errors.New("variable has not been declared")
	ErrInvalidConditional = errors.New("invalid conditional")
)

// RuntimeError represents a runtime error in the VM.
type RuntimeError struct {
	Type    ErrorType
	Command opcode.Cmd
	Line    int // Line number if available, -1 otherwise
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Type, e.Message, e.Command)
	if e.Line >= 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the handler's error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewUnknownCommandError creates an error for an instruction whose command is
// missing from the registry.
func NewUnknownCommandError(cmd opcode.Cmd, line int) *RuntimeError {
	return &RuntimeError{
		Type:    ErrorUnknownCommand,
		Command: cmd,
		Line:    line,
		Message: "unknown command at dispatch",
	}
}

// NewHandlerError classifies an error returned by a command handler.
func NewHandlerError(cmd opcode.Cmd, line int, err error) *RuntimeError {
	if errors.Is(err, ErrInvalidConditional) {
		return &RuntimeError{
			Type:    ErrorInvalidConditional,
			Command: cmd,
			Line:    line,
			Message: "invalid conditional in command",
			Err:     err,
		}
	}
	return &RuntimeError{
		Type:    ErrorHandlerFailure,
		Command: cmd,
		Line:    line,
		Message: "failed to execute command",
		Err:     err,
	}
}
