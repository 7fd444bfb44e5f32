// Package vm provides variable storage for the BasilC virtual machine.
package vm

import (
	"strings"

	"github.com/zurustar/basilc/pkg/program"
)

// MaxDataSize is the maximum length in bytes of a variable name or value.
const MaxDataSize = 32

// Binding is one variable.
type Binding struct {
	Name  string
	Value string
}

// Store holds variable bindings in definition order.
// There is a single global scope; bindings live until the run ends.
type Store struct {
	bindings []Binding
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{bindings: make([]Binding, 0, 16)}
}

func (s *Store) index(name string) int {
	name = program.Clamp(name, MaxDataSize)
	for i := range s.bindings {
		if s.bindings[i].Name == name {
			return i
		}
	}
	return -1
}

// Define binds value to name. An existing binding is updated in place.
// Names and values longer than MaxDataSize are truncated.
func (s *Store) Define(name, value string) {
	value = program.Clamp(value, MaxDataSize)
	if i := s.index(name); i >= 0 {
		s.bindings[i].Value = value
		return
	}
	s.bindings = append(s.bindings, Binding{
		Name:  program.Clamp(name, MaxDataSize),
		Value: value,
	})
}

// Set updates an existing binding and reports whether name was defined.
func (s *Store) Set(name, value string) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}
	s.bindings[i].Value = program.Clamp(value, MaxDataSize)
	return true
}

// Lookup returns the value bound to name.
func (s *Store) Lookup(name string) (string, bool) {
	if i := s.index(name); i >= 0 {
		return s.bindings[i].Value, true
	}
	return "", false
}

// Has reports whether name is bound.
func (s *Store) Has(name string) bool {
	return s.index(name) >= 0
}

// Size returns the number of bindings.
func (s *Store) Size() int {
	return len(s.bindings)
}

// Bindings returns a copy of all bindings in definition order.
func (s *Store) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Interpolate replaces every $name token in text with the bound value.
// A token starts at '$' and runs up to the next space or the end of text.
//
// It returns false when text holds no token or when any referenced variable
// is undefined; callers then use text as-is, so partial substitution never
// reaches the output.
func (s *Store) Interpolate(text string) (string, bool) {
	var buf strings.Builder
	found := false

	rest := text
	for {
		start := strings.IndexByte(rest, '$')
		if start < 0 {
			buf.WriteString(rest)
			break
		}
		buf.WriteString(rest[:start])

		end := strings.IndexByte(rest[start:], ' ')
		if end < 0 {
			end = len(rest)
		} else {
			end += start
		}

		value, ok := s.Lookup(rest[start+1 : end])
		if !ok {
			return "", false
		}
		buf.WriteString(value)
		found = true
		rest = rest[end:]
	}

	if !found {
		return "", false
	}
	return buf.String(), true
}
