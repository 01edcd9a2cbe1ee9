// Package variable resolves bound variables by combining their definitions
// with the selection currently committed to the location state.
package variable

import (
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/selection"
)

// Registry answers getBoundVariable lookups. Every call reflects the store's
// latest state; returned variables are fresh copies.
type Registry struct {
	defs  map[string]model.Variable
	order []string
	store selection.Store
}

// NewRegistry indexes the definitions. Later definitions with a duplicate
// name replace earlier ones. store may be nil.
func NewRegistry(defs []model.Variable, store selection.Store) *Registry {
	r := &Registry{defs: make(map[string]model.Variable, len(defs)), store: store}
	for _, def := range defs {
		if _, seen := r.defs[def.Name]; !seen {
			r.order = append(r.order, def.Name)
		}
		r.defs[def.Name] = def
	}
	return r
}

// Names lists the defined variables in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Variable implements selection.VariableResolver.
func (r *Registry) Variable(name string) *model.Variable {
	def, ok := r.defs[name]
	if !ok {
		return nil
	}
	v := def.Clone()
	if r.store == nil {
		return &v
	}
	cur := r.store.Read(name)
	if cur.State == selection.StateAbsent {
		return &v
	}
	Apply(&v, cur.Values)
	return &v
}

// Apply marks v's options as selected according to committed values and
// records them as v's current value. "All" selects the all option.
func Apply(v *model.Variable, values []string) {
	v.Current = append([]string{}, values...)
	v.HasCurrent = true

	set := make(map[string]bool, len(values))
	all := false
	for _, value := range values {
		if model.IsAll(value) {
			all = true
			continue
		}
		set[value] = true
	}
	for i := range v.Options {
		opt := &v.Options[i]
		if opt.Value == model.AllValue {
			opt.Selected = all
			continue
		}
		opt.Selected = set[opt.Value] || set[opt.Text]
	}

	if v.Kind() == model.KindFreeText && len(values) > 0 {
		v.Options = []model.Option{{Value: values[0], Text: values[0], Selected: true}}
	}
}
