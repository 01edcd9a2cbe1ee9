// Package selection computes the values to commit for bound variables when
// the user picks tree nodes.
package selection

import "github.com/Dicklesworthstone/hierarchy_picker/pkg/model"

// State distinguishes a variable the store has never seen from one it holds
// an empty selection for.
type State int

const (
	StateAbsent State = iota
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	}
	return "absent"
}

// Current is what the external store holds for one variable.
type Current struct {
	State  State
	Values []string
}

// CurrentOf builds a Current from a raw lookup result.
func CurrentOf(values []string, present bool) Current {
	switch {
	case !present:
		return Current{State: StateAbsent}
	case len(values) == 0:
		return Current{State: StateEmpty, Values: []string{}}
	}
	return Current{State: StatePopulated, Values: values}
}

// Store is the shared location state selections are committed to. Writes are
// fire and forget; the store is last-writer-wins.
type Store interface {
	Read(name string) Current
	Write(name string, values []string)
}

// VariableResolver returns the latest state of a named variable, or nil when
// it does not exist (yet).
type VariableResolver interface {
	Variable(name string) *model.Variable
}

// VariableResolverFunc adapts a function to VariableResolver.
type VariableResolverFunc func(name string) *model.Variable

// Variable implements VariableResolver.
func (f VariableResolverFunc) Variable(name string) *model.Variable {
	return f(name)
}
