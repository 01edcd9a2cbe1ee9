package selection

import (
	"log/slog"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// Option configures a Reconciler or Cascade.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Reconciler turns a requested set of values into the final selection of one
// variable and writes it to the store.
type Reconciler struct {
	store  Store
	logger *slog.Logger
}

// NewReconciler creates a Reconciler that commits to store.
func NewReconciler(store Store, opts ...Option) *Reconciler {
	o := buildOptions(opts)
	return &Reconciler{store: store, logger: o.logger}
}

// Reconcile commits the selection that results from requesting values on v.
//
// Single-select variables take the first requested value. Multi-select
// variables collapse to "All" when it is requested; when every requested
// value is already selected they are removed, otherwise the requested values
// are added in front of the current ones. keepExisting disables the removal
// path. Free-text variables take the first value verbatim. Missing and
// unsupported variables are ignored.
func (r *Reconciler) Reconcile(requested []string, v *model.Variable, keepExisting ...bool) {
	if v == nil || r.store == nil {
		return
	}
	keep := len(keepExisting) > 0 && keepExisting[0]

	switch v.Kind() {
	case model.KindSingleSelect:
		if len(requested) == 0 {
			return
		}
		value := requested[0]
		if model.IsAll(value) {
			value = model.AllText
		}
		r.commit(v, []string{value})

	case model.KindMultiSelect:
		if len(requested) == 0 {
			return
		}
		for _, value := range requested {
			if model.IsAll(value) {
				r.commit(v, []string{model.AllText})
				return
			}
		}
		r.commit(v, multiSelection(unique(requested), r.current(v), keep, optionKey(v)))

	case model.KindFreeText:
		if len(requested) == 0 {
			return
		}
		r.commit(v, []string{requested[0]})

	default:
		r.logger.Debug("skip selection for unsupported variable",
			"variable", v.Name, "type", v.Type)
	}
}

// MultiSelection computes the next selection of a multi-select variable.
// requested must be free of duplicates and of the all sentinel.
func MultiSelection(requested, current []string, keepExisting bool) []string {
	return multiSelection(requested, current, keepExisting, func(s string) string { return s })
}

// multiSelection compares entries by key, so a value and an option text
// that name the same option count as one selection.
func multiSelection(requested, current []string, keepExisting bool, key func(string) string) []string {
	selected := make(map[string]bool, len(current))
	for _, c := range current {
		selected[key(c)] = true
	}
	already := make(map[string]bool, len(requested))
	for _, value := range requested {
		if k := key(value); selected[k] {
			already[k] = true
		}
	}

	if !keepExisting && len(already) == len(requested) {
		remaining := make([]string, 0, len(current))
		for _, c := range current {
			if !already[key(c)] {
				remaining = append(remaining, c)
			}
		}
		return remaining
	}

	seen := make(map[string]bool, len(requested)+len(current))
	out := make([]string, 0, len(requested)+len(current))
	for _, value := range append(append([]string{}, requested...), current...) {
		k := key(value)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, value)
	}
	return out
}

// optionKey maps a committed entry to the value of the option it names,
// matching option values first and option texts second. Entries that name
// no option are their own key.
func optionKey(v *model.Variable) func(string) string {
	return func(s string) string {
		if opt, ok := v.FindOption(s); ok {
			return opt.Value
		}
		for _, opt := range v.Options {
			if opt.Text != "" && opt.Text == s {
				return opt.Value
			}
		}
		return s
	}
}

// current reads the committed values of v from the store right before a
// write. A variable the store has never held is seeded from its own selected
// options.
func (r *Reconciler) current(v *model.Variable) []string {
	cur := r.store.Read(v.Name)
	values := cur.Values
	if cur.State == StateAbsent {
		values = v.SelectedTexts()
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if !model.IsAll(value) {
			out = append(out, value)
		}
	}
	return out
}

func (r *Reconciler) commit(v *model.Variable, values []string) {
	r.logger.Debug("commit selection",
		"variable", v.Name, "kind", v.Kind().String(), "values", values)
	r.store.Write(v.Name, values)
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
