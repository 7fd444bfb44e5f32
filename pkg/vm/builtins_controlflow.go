package vm

import (
	"fmt"

	"github.com/zurustar/basilc/pkg/opcode"
)

// registerControlFlowBuiltins registers if(), endif(), label(), goto() and end().
func registerControlFlowBuiltins(r *Registry) {
	// if: the condition is interpolated when the instruction runs
	r.Register(Entry{
		Name:  opcode.If,
		Arity: Exact(1),
		Handler: func(v *VM, pc *int) error {
			cond := v.program.At(*pc).Arg(0)
			if expanded, ok := v.vars.Interpolate(cond); ok {
				cond = expanded
			}
			result, err := EvalCondition(cond)
			if err != nil {
				return err
			}
			v.log.Debug("if evaluated", "condition", cond, "result", result)
			v.ActivateBlock(*pc, result)
			return nil
		},
		SpecialParse: func(v *VM) bool {
			return v.OpenBlock()
		},
	})

	// endif: block marker only, never dispatched
	r.Register(Entry{
		Name:    opcode.EndIf,
		Arity:   Exact(0),
		Handler: func(v *VM, pc *int) error { return nil },
		SpecialParse: func(v *VM) bool {
			return v.CloseBlock()
		},
	})

	r.Register(Entry{
		Name:    opcode.Label,
		Arity:   Exact(1),
		Handler: func(v *VM, pc *int) error { return nil },
	})

	r.Register(Entry{
		Name:  opcode.Goto,
		Arity: Exact(1),
		Handler: func(v *VM, pc *int) error {
			name := v.program.At(*pc).Arg(0)
			target, ok := v.FindLabel(name)
			if !ok {
				return fmt.Errorf("%w: %s", ErrLabelNotFound, name)
			}
			*pc = target
			return nil
		},
	})

	// end: jump to the sentinel
	r.Register(Entry{
		Name:  opcode.End,
		Arity: Exact(0),
		Handler: func(v *VM, pc *int) error {
			*pc = v.program.Tail()
			return nil
		},
	})
}
