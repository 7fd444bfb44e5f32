package vm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zurustar/basilc/pkg/opcode"
)

const escapeReset = "\033[0m"

// colour names in ANSI order; the index is added to 30 (foreground) or 40 (background).
var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// colorEscape returns the escape sequence selecting colour name on base
// (30 or 40). Unknown names reset the terminal.
func colorEscape(name string, base int) string {
	for i, c := range colorNames {
		if c == name {
			return fmt.Sprintf("\033[%dm", base+i)
		}
	}
	return escapeReset
}

// writeEscape writes an ANSI escape unless colour output is suppressed.
func (vm *VM) writeEscape(code string) {
	if vm.monochrome {
		return
	}
	fmt.Fprint(vm.out, code)
}

// say prints the instruction's text, interpolated when every $name is defined.
func say(v *VM, pc *int) error {
	text := v.program.At(*pc).Arg(0)
	if expanded, ok := v.vars.Interpolate(text); ok {
		text = expanded
	}
	_, err := fmt.Fprintln(v.out, text)
	return err
}

// registerIOBuiltins registers say(), sayln(), tint(), tintbg() and ask().
func registerIOBuiltins(r *Registry) {
	r.Register(Entry{Name: opcode.Say, Arity: Variadic, Handler: say})
	r.Register(Entry{Name: opcode.SayLn, Arity: Variadic, Handler: say})

	r.Register(Entry{
		Name:  opcode.Tint,
		Arity: Exact(1),
		Handler: func(v *VM, pc *int) error {
			v.writeEscape(colorEscape(v.program.At(*pc).Arg(0), 30))
			return nil
		},
	})

	r.Register(Entry{
		Name:  opcode.TintBg,
		Arity: Exact(1),
		Handler: func(v *VM, pc *int) error {
			v.writeEscape(colorEscape(v.program.At(*pc).Arg(0), 40))
			return nil
		},
	})

	// ask(prompt, variable): the variable must already be defined
	r.Register(Entry{
		Name:  opcode.Ask,
		Arity: Exact(2),
		Handler: func(v *VM, pc *int) error {
			ins := v.program.At(*pc)
			prompt, name := ins.Arg(0), ins.Arg(1)
			if !v.vars.Has(name) {
				return fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
			}

			fmt.Fprint(v.out, prompt)
			line, err := v.in.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read input: %w", err)
			}
			v.vars.Set(name, strings.TrimRight(line, "\r\n"))
			return nil
		},
	})
}
