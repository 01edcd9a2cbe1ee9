package selection

import (
	"log/slog"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/tree"
)

// Update is one reconciliation the cascade will issue.
type Update struct {
	Variable string
	Values   []string
	// Origin marks the update for the variable the click came from.
	Origin bool
}

// Cascade fans a click on a tree node out into one reconciliation per
// variable bound along the clicked branch.
type Cascade struct {
	reconciler *Reconciler
	variables  VariableResolver
	logger     *slog.Logger
}

// NewCascade creates a Cascade that resolves variables through variables and
// commits through reconciler.
func NewCascade(reconciler *Reconciler, variables VariableResolver, opts ...Option) *Cascade {
	o := buildOptions(opts)
	return &Cascade{reconciler: reconciler, variables: variables, logger: o.logger}
}

// Plan computes the updates for a click on clicked within items without
// committing anything.
//
// The tree is narrowed to the branches leading to the clicked node's leaf
// values and flattened per depth. Depths that share a variable are merged,
// values that are not options of their variable are dropped, and every
// variable other than the clicked one only receives values it does not
// already have selected.
func (c *Cascade) Plan(items []model.TableItem, clicked model.TableItem) []Update {
	targets := clicked.Values()
	if len(targets) == 0 {
		return nil
	}
	flat := tree.FlattenByDepth(tree.FilterByValues(items, targets))

	var updates []Update
	index := make(map[string]int)
	for _, entry := range flat {
		i, ok := index[entry.Variable]
		if !ok {
			i = len(updates)
			index[entry.Variable] = i
			updates = append(updates, Update{
				Variable: entry.Variable,
				Origin:   entry.Variable == clicked.Variable,
			})
		}
		updates[i].Values = append(updates[i].Values, entry.Values...)
	}

	out := make([]Update, 0, len(updates))
	for _, u := range updates {
		v := c.variables.Variable(u.Variable)
		if v == nil {
			c.logger.Debug("cascade skips missing variable", "variable", u.Variable)
			continue
		}
		u.Values = applicableValues(v, unique(u.Values), !u.Origin)
		if len(u.Values) == 0 {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Apply plans and commits the updates for a click on clicked.
func (c *Cascade) Apply(items []model.TableItem, clicked model.TableItem) []Update {
	updates := c.Plan(items, clicked)
	for _, u := range updates {
		v := c.variables.Variable(u.Variable)
		if u.Origin {
			c.reconciler.Reconcile(u.Values, v)
		} else {
			c.reconciler.Reconcile(u.Values, v, true)
		}
	}
	return updates
}

// applicableValues keeps the values v can hold and, when onlyUnselected is
// set, drops the ones v already has selected.
func applicableValues(v *model.Variable, values []string, onlyUnselected bool) []string {
	hasOptions := v.Kind().HasOptions()
	selectedAll := v.IsSelectedAll()
	out := make([]string, 0, len(values))
	for _, value := range values {
		opt, found := v.FindOption(value)
		if hasOptions && !found {
			continue
		}
		if onlyUnselected && (selectedAll || opt.Selected) {
			continue
		}
		out = append(out, value)
	}
	return out
}
