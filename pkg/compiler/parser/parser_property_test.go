package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/basilc/pkg/vm"
)

// TestProperty1_ArityContract tests that an exact-arity command accepts a
// line exactly when the number of comma-separated arguments matches.
func TestProperty1_ArityContract(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("argument count decides acceptance", prop.ForAll(
		func(arity, supplied int) bool {
			reg := vm.NewRegistry()
			reg.Register(vm.Entry{
				Name:    "cmd",
				Arity:   vm.Exact(arity),
				Handler: func(v *vm.VM, pc *int) error { return nil },
			})

			parts := make([]string, supplied)
			for i := range parts {
				parts[i] = "v"
			}
			stmt, err := ParseLine("cmd("+strings.Join(parts, ", ")+")", reg)

			if arity == supplied {
				return err == nil && len(stmt.Args) == arity
			}
			return errors.Is(err, ErrArgumentCountMismatch)
		},
		gen.IntRange(0, 5),
		gen.IntRange(0, 6),
	))

	properties.TestingRun(t)
}

// TestProperty2_VariadicKeepsText tests that a variadic command receives the
// text between the parentheses unchanged.
func TestProperty2_VariadicKeepsText(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	reg := vm.DefaultRegistry()

	properties.Property("say keeps its whole argument", prop.ForAll(
		func(words []string) bool {
			text := strings.Join(words, ", ")
			stmt, err := ParseLine("BasilC-say("+text+")", reg)
			return err == nil && len(stmt.Args) == 1 && stmt.Args[0] == text
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
