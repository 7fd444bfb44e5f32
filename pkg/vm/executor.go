package vm

import (
	"context"
	"fmt"
)

// Run executes the program from its first instruction until the sentinel is
// reached or a handler fails.
//
// Instructions with no command or with a cleared execute flag are skipped.
// After a successful handler the cursor moves to the successor of the
// dispatched instruction unless the handler moved it elsewhere.
//
// Returns:
//   - error: *RuntimeError for a failing dispatch, or the context's error when cancelled
func (vm *VM) Run(ctx context.Context) error {
	vm.ctx = ctx
	defer func() {
		vm.ctx = context.Background()
	}()

	p := vm.program
	vm.pc = 0

	vm.log.Info("VM started", "instruction_count", p.Len())

	for !p.IsEnd(vm.pc) {
		select {
		case <-ctx.Done():
			vm.log.Info("VM execution cancelled", "pc", vm.pc)
			return fmt.Errorf("execution cancelled: %w", ctx.Err())
		default:
		}

		ins := p.At(vm.pc)
		if ins.IsNoop() || !ins.Execute {
			vm.pc = p.Next(vm.pc)
			continue
		}

		entry, ok := vm.registry.Lookup(ins.Command)
		if !ok {
			return NewUnknownCommandError(ins.Command, ins.Line)
		}

		vm.log.Debug("Executing instruction", "pc", vm.pc, "cmd", ins.Command, "line", ins.Line)

		recorded := vm.pc
		if err := entry.Handler(vm, &vm.pc); err != nil {
			vm.log.Error("Instruction execution error", "pc", recorded, "cmd", ins.Command, "error", err)
			return NewHandlerError(ins.Command, ins.Line, err)
		}

		if vm.pc == recorded {
			vm.pc = p.Next(recorded)
		}
	}

	vm.log.Info("VM execution completed")
	return nil
}
