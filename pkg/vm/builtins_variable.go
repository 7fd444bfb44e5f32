package vm

import (
	"github.com/zurustar/basilc/pkg/opcode"
)

// registerVariableBuiltins registers variable storage commands.
func registerVariableBuiltins(r *Registry) {
	// define: bind or rebind a variable
	r.Register(Entry{
		Name:  opcode.Define,
		Arity: Exact(2),
		Handler: func(v *VM, pc *int) error {
			ins := v.program.At(*pc)
			v.vars.Define(ins.Arg(0), ins.Arg(1))
			return nil
		},
	})
}
