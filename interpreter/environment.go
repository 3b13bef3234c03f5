package interpreter

import (
	"fmt"

	"github.com/simondevenish/EmberScript/token"
)

// Environment holds the variable bindings visible at one lexical scope.
// Scopes chain through Parent, so a lookup or assignment that misses in the
// current scope walks outward until it reaches the root.
type Environment struct {
	values map[string]any
	Parent *Environment
}

// CreateRootEnvironment builds a new Environment with no enclosing scope.
func CreateRootEnvironment() *Environment {
	return &Environment{
		values: make(map[string]any),
	}
}

// CreateChildEnvironment builds a new Environment nested inside parent, used
// whenever a block, loop body, or function call introduces a fresh scope.
func CreateChildEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]any),
		Parent: parent,
	}
}

// define binds name to value in this scope specifically, shadowing any
// binding of the same name in an enclosing scope.
func (env *Environment) define(name string, value any) {
	env.values[name] = value
}

// set assigns value to the nearest enclosing binding of name, walking up the
// parent chain. It does not create a new binding: assigning to an
// undeclared variable is a runtime error.
func (env *Environment) set(name token.Token, value any) error {
	if _, ok := env.values[name.Lexeme]; ok {
		env.values[name.Lexeme] = value
		return nil
	}
	if env.Parent != nil {
		return env.Parent.set(name, value)
	}
	msg := fmt.Sprintf("undefined variable: %s", name.Lexeme)
	return CreateRuntimeError(name.Line, name.Column, msg)
}

// get resolves name by walking outward from this scope to the root,
// returning a RuntimeError if no enclosing scope defines it.
func (env *Environment) get(name token.Token) (any, error) {
	if value, ok := env.values[name.Lexeme]; ok {
		return value, nil
	}
	if env.Parent != nil {
		return env.Parent.get(name)
	}
	msg := fmt.Sprintf("undefined variable: %s", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}
