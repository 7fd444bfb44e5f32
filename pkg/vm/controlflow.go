package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zurustar/basilc/pkg/opcode"
)

// OpenBlock enters a conditional block at build time.
// Only one block can be pending, so it fails if one already is.
func (vm *VM) OpenBlock() bool {
	if vm.inBlock {
		return false
	}
	vm.inBlock = true
	return true
}

// CloseBlock leaves the pending conditional block. It fails when no block is open.
func (vm *VM) CloseBlock() bool {
	if !vm.inBlock {
		return false
	}
	vm.inBlock = false
	return true
}

// InBlock reports whether a conditional block is waiting for its endif.
func (vm *VM) InBlock() bool {
	return vm.inBlock
}

// ActivateBlock marks the instructions from at (inclusive) up to the next
// endif (exclusive) as executable when cond is true. A false cond leaves
// every flag as it was built.
func (vm *VM) ActivateBlock(at int, cond bool) {
	if !cond {
		return
	}
	p := vm.program
	for i := at; !p.IsEnd(i); i = p.Next(i) {
		ins := p.At(i)
		if ins.Command == opcode.EndIf {
			break
		}
		ins.Execute = true
	}
}

// FindLabel returns the index of the first label instruction named name.
func (vm *VM) FindLabel(name string) (int, bool) {
	p := vm.program
	for i := 0; !p.IsEnd(i); i = p.Next(i) {
		ins := p.At(i)
		if ins.Command == opcode.Label && ins.Arg(0) == name {
			return i, true
		}
	}
	return 0, false
}

// comparison signs in the order they are probed.
var conditionSigns = []byte{'=', '>', '<'}

// EvalCondition evaluates a single comparison such as "5 > 3".
//
// The first of '=', '>' and '<' found in cond selects the operator. The left
// operand is the text before the first space and the right operand the text
// after the last space; both are read as integers, non-numeric text as 0.
func EvalCondition(cond string) (bool, error) {
	var sign byte
	for _, s := range conditionSigns {
		if strings.IndexByte(cond, s) >= 0 {
			sign = s
			break
		}
	}
	if sign == 0 {
		return false, fmt.Errorf("%w: no comparison sign in %q", ErrInvalidConditional, cond)
	}

	first := strings.IndexByte(cond, ' ')
	last := strings.LastIndexByte(cond, ' ')
	if first < 0 {
		return false, fmt.Errorf("%w: operands must be separated by spaces in %q", ErrInvalidConditional, cond)
	}

	left := ParseIntOrZero(cond[:first])
	right := ParseIntOrZero(cond[last+1:])

	switch sign {
	case '=':
		return left == right, nil
	case '>':
		return left > right, nil
	default:
		return left < right, nil
	}
}

// ParseIntOrZero reads the leading integer of s the way C's atoi does:
// leading whitespace and a sign are accepted, parsing stops at the first
// non-digit, and text without digits (or out of range) yields 0.
func ParseIntOrZero(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
