// Package vm provides the command registry for the BasilC virtual machine.
package vm

import (
	"fmt"

	"github.com/zurustar/basilc/pkg/opcode"
	"github.com/zurustar/basilc/pkg/program"
)

// Arity is the argument contract a command enforces at parse time.
// A non-negative value is an exact count; Variadic captures the whole
// parenthesised text as a single argument.
type Arity int

// Variadic accepts any text between the parentheses, commas included.
const Variadic Arity = -1

// Exact returns the contract for exactly n arguments.
func Exact(n int) Arity {
	return Arity(n)
}

// IsVariadic reports whether the contract bypasses the argument count check.
func (a Arity) IsVariadic() bool {
	return a == Variadic
}

// String returns a readable form of the contract.
func (a Arity) String() string {
	if a.IsVariadic() {
		return "variadic"
	}
	return fmt.Sprintf("%d", int(a))
}

// HandlerFunc executes one instruction. pc points at the VM's cursor; a handler
// that assigns to it redirects execution.
type HandlerFunc func(vm *VM, pc *int) error

// SpecialParseFunc runs while the program is being built, right after the
// statement's instruction has been appended. Returning false rejects the statement.
type SpecialParseFunc func(vm *VM) bool

// Entry describes a registered command.
type Entry struct {
	Name         opcode.Cmd
	Arity        Arity
	Handler      HandlerFunc
	SpecialParse SpecialParseFunc
}

// Registry is an append-only table of commands, searched in registration order.
type Registry struct {
	entries []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make([]Entry, 0, 16)}
}

// Register appends a command. Duplicate names are kept; Lookup returns the first.
// It panics on an entry that can never be parsed or executed.
func (r *Registry) Register(e Entry) {
	if e.Name == "" {
		panic("vm: command name must not be empty")
	}
	if e.Handler == nil {
		panic(fmt.Sprintf("vm: command %q has no handler", e.Name))
	}
	if e.Arity < Variadic || int(e.Arity) > program.MaxArgs {
		panic(fmt.Sprintf("vm: command %q has invalid arity %d (max %d)", e.Name, int(e.Arity), program.MaxArgs))
	}
	r.entries = append(r.entries, e)
}

// Lookup returns the first entry registered under name.
func (r *Registry) Lookup(name opcode.Cmd) (*Entry, bool) {
	for i := range r.entries {
		if r.entries[i].Name == name {
			return &r.entries[i], true
		}
	}
	return nil, false
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []opcode.Cmd {
	names := make([]opcode.Cmd, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}
