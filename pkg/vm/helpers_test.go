package vm

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/zurustar/basilc/pkg/opcode"
)

// stmt is a parsed statement fed to load.
type stmt struct {
	cmd  opcode.Cmd
	args []string
}

func st(cmd opcode.Cmd, args ...string) stmt {
	return stmt{cmd: cmd, args: args}
}

// newTestVM creates a monochrome VM writing to out with logging discarded.
func newTestVM(out *bytes.Buffer, opts ...Option) *VM {
	base := []Option{
		WithOutput(out),
		WithErrorOutput(io.Discard),
		WithMonochrome(true),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(append(base, opts...)...)
}

// load appends statements to the program the way the compiler does:
// execute flag first, then the special-parse hook.
func load(t *testing.T, v *VM, stmts ...stmt) {
	t.Helper()
	p := v.Program()
	for i, s := range stmts {
		entry, ok := v.Registry().Lookup(s.cmd)
		if !ok {
			t.Fatalf("command %q is not registered", s.cmd)
		}
		ins := p.Set(s.cmd, s.args, i+1)
		ins.Execute = !v.InBlock()
		if entry.SpecialParse != nil && !entry.SpecialParse(v) {
			t.Fatalf("special parse rejected %q at statement %d", s.cmd, i+1)
		}
		p.Advance()
	}
}
