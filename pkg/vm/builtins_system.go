package vm

import (
	"fmt"
	"time"

	"github.com/zurustar/basilc/pkg/opcode"
)

// registerSystemBuiltins registers the commands that talk to the host system.
func registerSystemBuiltins(r *Registry) {
	// yolo: run the text as a shell command
	r.Register(Entry{
		Name:  opcode.Yolo,
		Arity: Variadic,
		Handler: func(v *VM, pc *int) error {
			command := v.program.At(*pc).Arg(0)
			v.log.Debug("yolo called", "command", command)
			if err := v.system.Run(v.ctx, command, v.out, v.errOut); err != nil {
				return fmt.Errorf("failed to run %q: %w", command, err)
			}
			return nil
		},
	})

	// naptime: sleep for whole seconds
	r.Register(Entry{
		Name:  opcode.Naptime,
		Arity: Exact(1),
		Handler: func(v *VM, pc *int) error {
			seconds := ParseIntOrZero(v.program.At(*pc).Arg(0))
			v.log.Debug("naptime called", "seconds", seconds)
			return v.system.Sleep(v.ctx, time.Duration(seconds)*time.Second)
		},
	})
}
