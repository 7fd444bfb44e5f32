// Package compiler builds executable BasilC programs from script lines.
//
// Each line goes through the parser; every statement becomes one instruction
// appended to the VM's program. The builder threads the VM's pending
// conditional block into each instruction's execute flag and runs the
// command's special-parse hook.
package compiler

import (
	"errors"
	"log/slog"

	"github.com/zurustar/basilc/pkg/compiler/parser"
	"github.com/zurustar/basilc/pkg/logger"
	"github.com/zurustar/basilc/pkg/vm"
)

// Builder appends statements to a VM's program.
type Builder struct {
	vm     *vm.VM
	source []string // full script when known up front
	lines  []string // lines seen so far
	last   int      // last line number seen
	log    *slog.Logger
}

// NewBuilder creates a builder writing into v's program.
func NewBuilder(v *vm.VM) *Builder {
	return &Builder{
		vm:  v,
		log: logger.GetLogger(),
	}
}

// AddLine parses one source line and appends its instruction, if any.
//
// Parameters:
//   - line: The raw line, without its terminator
//   - lineNum: The 1-indexed line number
//
// Returns:
//   - error: *CompileError when the line is rejected
func (b *Builder) AddLine(line string, lineNum int) error {
	b.lines = append(b.lines, line)
	b.last = lineNum

	stmt, err := parser.ParseLine(line, b.vm.Registry())
	if err != nil {
		column := 0
		var pe *parser.ParserError
		if errors.As(err, &pe) {
			column = pe.Column
		}
		return b.errorAt(err, err.Error(), lineNum, column, line)
	}
	if stmt == nil {
		return nil
	}

	p := b.vm.Program()

	// The execute flag is decided before the statement's own hook runs, so an
	// if() stays executable while the statements inside its block do not.
	ins := p.Set(stmt.Entry.Name, stmt.Args, lineNum)
	ins.Execute = !b.vm.InBlock()

	if hook := stmt.Entry.SpecialParse; hook != nil && !hook(b.vm) {
		p.Discard()
		return b.errorAt(ErrSpecialParseFailed, "special parse failed for "+stmt.Entry.Name.String(), lineNum, 0, line)
	}

	b.log.Debug("Instruction added", "line", lineNum, "cmd", stmt.Entry.Name, "args", stmt.Args, "execute", ins.Execute)

	p.Advance()
	return nil
}

// Finish runs the end-of-input checks.
func (b *Builder) Finish() error {
	if b.vm.InBlock() {
		return &CompileError{
			Err:     ErrUnterminatedBlock,
			Message: ErrUnterminatedBlock.Error(),
			Line:    b.last,
			Content: "end of script",
		}
	}
	return nil
}

func (b *Builder) errorAt(kind error, message string, lineNum, column int, content string) *CompileError {
	lines := b.source
	if lines == nil {
		lines = b.lines
	}
	return &CompileError{
		Err:     kind,
		Message: message,
		Line:    lineNum,
		Column:  column,
		Content: content,
		Context: GenerateErrorContext(lines, lineNum, column),
	}
}

// Compile builds the program for lines into v. It stops at the first error.
//
// Parameters:
//   - v: The interpreter context that receives the program
//   - lines: The script's lines, without terminators
//
// Returns:
//   - error: *CompileError describing the first rejected line
func Compile(v *vm.VM, lines []string) error {
	b := NewBuilder(v)
	b.source = lines
	for i, line := range lines {
		if err := b.AddLine(line, i+1); err != nil {
			return err
		}
	}
	return b.Finish()
}
