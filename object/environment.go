package object

import "sort"

// --- Environment ---

// Environment is one frame of the lexical scope chain.
//
// A frame links to its outer frame rather than copying it, so bindings added
// to an outer frame later are still visible through the chain, while Define
// only ever writes to the frame it is called on.
type Environment struct {
	store  map[string]Object
	consts map[string]Object // builtins and literals; Define in the same frame may not replace them
	outer  *Environment
}

// NewEnvironment creates a new, top-level environment.
func NewEnvironment() *Environment {
	return &Environment{
		store:  make(map[string]Object),
		consts: make(map[string]Object),
	}
}

// NewEnclosedEnvironment creates a new, empty environment enclosed by outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Child returns a new empty frame whose parent is e.
func (e *Environment) Child() *Environment {
	return NewEnclosedEnvironment(e)
}

// Get retrieves an object by name, checking outer scopes if necessary.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.consts[name]; ok {
			return obj, true
		}
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Lookup is Get for the evaluator: an unresolved name is an *UnboundNameError.
func (e *Environment) Lookup(name string) (Object, error) {
	if obj, ok := e.Get(name); ok {
		return obj, nil
	}
	return nil, &UnboundNameError{Name: name}
}

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, val Object) {
	e.store[name] = val
}

// SetConstant stores a binding that Define in this frame cannot replace.
func (e *Environment) SetConstant(name string, val Object) {
	e.consts[name] = val
}

// IsConstant reports whether name is a constant of this frame (outer frames are not consulted).
func (e *Environment) IsConstant(name string) bool {
	_, ok := e.consts[name]
	return ok
}

// Outer returns the enclosing environment.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names returns the sorted names bound in this frame.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store)+len(e.consts))
	for k := range e.consts {
		names = append(names, k)
	}
	for k := range e.store {
		if _, ok := e.consts[k]; !ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
