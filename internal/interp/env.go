package interp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/glox/internal/syntax"
)

// Environment maps variable names to values. There is a single global
// environment per interpreter; there are no nested scopes.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Define binds name to v.
//
// Redefinition silently overwrites the previous binding. That is what makes
// "var x = 1; var x = 2;" legal at the REPL, but it also hides accidental
// duplicate declarations in scripts.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get returns the value bound to name, or an undefined-variable
// RuntimeError referencing the name token.
func (e *Environment) Get(name syntax.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	return nil, &RuntimeError{Tok: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// Lookup returns the value bound to name and whether it exists.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Names returns the bound names, sorted alphabetically.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// String returns a listing of the bindings for debugging.
func (e *Environment) String() string {
	var buf strings.Builder
	buf.WriteString("env {\n")
	for _, name := range e.Names() {
		v := e.values[name]
		fmt.Fprintf(&buf, "  %s: %s = %s\n", name, v.Kind(), display(v))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// display is like Value.String but quotes strings.
func display(v Value) string {
	if s, ok := v.(String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return v.String()
}
