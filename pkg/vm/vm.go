// Package vm provides the virtual machine for executing BasilC programs.
// It implements:
// - The command registry the parser and the execution loop dispatch through
// - Conditional block state, block activation and label lookup
// - Variable storage and $name interpolation
// - The sequential execution loop
// - The built-in command library
package vm

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/basilc/pkg/logger"
	"github.com/zurustar/basilc/pkg/program"
)

// VM is the interpreter context for one script: it is handed to the compiler
// while the program is built and then runs it.
type VM struct {
	registry *Registry
	program  *program.Program
	vars     *Store

	// Pending conditional block (build time)
	inBlock bool

	// Execution cursor
	pc int

	// I/O
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	system System

	// Configuration
	monochrome bool

	// Context of the current Run, for blocking handlers
	ctx context.Context

	log *slog.Logger
}

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithRegistry replaces the default built-in command set.
func WithRegistry(r *Registry) Option {
	return func(vm *VM) {
		vm.registry = r
	}
}

// WithOutput sets the writer script output goes to.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) {
		vm.out = w
	}
}

// WithErrorOutput sets the writer shell commands' stderr goes to.
func WithErrorOutput(w io.Writer) Option {
	return func(vm *VM) {
		vm.errOut = w
	}
}

// WithInput sets the reader interactive prompts read from.
func WithInput(r io.Reader) Option {
	return func(vm *VM) {
		vm.in = bufio.NewReader(r)
	}
}

// WithSystem sets the host system used for shell commands and sleeping.
func WithSystem(s System) Option {
	return func(vm *VM) {
		vm.system = s
	}
}

// WithMonochrome suppresses colour escape sequences.
func WithMonochrome(monochrome bool) Option {
	return func(vm *VM) {
		vm.monochrome = monochrome
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}

// New creates a VM with an empty program and the given options.
func New(opts ...Option) *VM {
	vm := &VM{
		program: program.New(),
		vars:    NewStore(),
		out:     os.Stdout,
		errOut:  os.Stderr,
		in:      bufio.NewReader(os.Stdin),
		system:  HostSystem{},
		ctx:     context.Background(),
		log:     logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.registry == nil {
		vm.registry = DefaultRegistry()
	}

	return vm
}

// Registry returns the command registry.
func (vm *VM) Registry() *Registry {
	return vm.registry
}

// Program returns the program being built or run.
func (vm *VM) Program() *program.Program {
	return vm.program
}

// Variables returns the variable store.
func (vm *VM) Variables() *Store {
	return vm.vars
}

// PC returns the execution cursor.
func (vm *VM) PC() int {
	return vm.pc
}

// Context returns the context of the current run.
func (vm *VM) Context() context.Context {
	return vm.ctx
}

// Output returns the writer script output goes to.
func (vm *VM) Output() io.Writer {
	return vm.out
}

// IsMonochrome reports whether colour output is suppressed.
func (vm *VM) IsMonochrome() bool {
	return vm.monochrome
}

// ResetColors restores the terminal's default colours.
func (vm *VM) ResetColors() {
	vm.writeEscape(escapeReset)
}
