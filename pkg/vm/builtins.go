package vm

// DefaultRegistry returns a registry holding the built-in command library.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerIOBuiltins(r)
	registerSystemBuiltins(r)
	registerVariableBuiltins(r)
	registerControlFlowBuiltins(r)
	return r
}
