// Package program provides the linked instruction list executed by the VM.
//
// Instructions live in a growable arena and are addressed by index. The
// successor of instruction i is always i+1, and the last slot of the arena is
// a sentinel with no command. Jumps move the VM's cursor; they never relink
// instructions.
package program

import (
	"unicode/utf8"

	"github.com/zurustar/basilc/pkg/opcode"
)

const (
	// MaxArgs is the number of argument slots an instruction carries.
	MaxArgs = 5

	// MaxArgLength is the maximum length of a single argument in bytes.
	MaxArgLength = 100
)

// Instruction is one parsed statement of a script.
type Instruction struct {
	// Command is the resolved command name. Empty means no-op (the sentinel).
	Command opcode.Cmd

	// Args holds at most MaxArgs arguments, each at most MaxArgLength bytes.
	Args []string

	// Execute reports whether the execution loop dispatches this instruction.
	Execute bool

	// Line is the 1-indexed source line the instruction was parsed from.
	Line int
}

// IsNoop reports whether the instruction carries no command.
func (ins *Instruction) IsNoop() bool {
	return ins.Command == ""
}

// Arg returns the i-th argument, or "" when the slot is empty.
func (ins *Instruction) Arg(i int) string {
	if i < 0 || i >= len(ins.Args) {
		return ""
	}
	return ins.Args[i]
}

// Program is the instruction arena.
type Program struct {
	instrs []Instruction
}

// New creates an empty program consisting only of the sentinel.
func New() *Program {
	p := &Program{instrs: make([]Instruction, 0, 64)}
	p.instrs = append(p.instrs, sentinel())
	return p
}

func sentinel() Instruction {
	return Instruction{Execute: true}
}

// Tail returns the index of the sentinel, which is where the next statement is written.
func (p *Program) Tail() int {
	return len(p.instrs) - 1
}

// At returns the instruction at index i.
// The pointer is only valid until the next call to Advance.
func (p *Program) At(i int) *Instruction {
	return &p.instrs[i]
}

// Set writes a statement into the tail slot and returns it.
// Arguments beyond MaxArgs are dropped and each argument is clamped to MaxArgLength.
func (p *Program) Set(cmd opcode.Cmd, args []string, line int) *Instruction {
	n := len(args)
	if n > MaxArgs {
		n = MaxArgs
	}
	stored := make([]string, n)
	for i := 0; i < n; i++ {
		stored[i] = Clamp(args[i], MaxArgLength)
	}

	ins := p.At(p.Tail())
	ins.Command = cmd
	ins.Args = stored
	ins.Line = line
	return ins
}

// Advance appends a fresh sentinel after the current tail.
func (p *Program) Advance() {
	p.instrs = append(p.instrs, sentinel())
}

// Discard clears the tail slot written by Set without appending it.
func (p *Program) Discard() {
	p.instrs[p.Tail()] = sentinel()
}

// Next returns the successor of instruction i.
func (p *Program) Next(i int) int {
	return i + 1
}

// IsEnd reports whether i addresses the sentinel (or lies past it).
func (p *Program) IsEnd(i int) bool {
	return i >= p.Tail()
}

// Len returns the number of instructions, not counting the sentinel.
func (p *Program) Len() int {
	return len(p.instrs) - 1
}

// Clamp shortens s to at most limit bytes without splitting a UTF-8 sequence.
func Clamp(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
