// Package picker stamps selection, status and favorite semantics onto the
// selection tree and ties levels groups, variables and favorites together
// into a panel that can be rebuilt on every refresh.
package picker

import (
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/selection"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/status"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/tree"
)

// Favorites is the favorites persistence the panel consumes.
type Favorites interface {
	IsFavorite(level, value string) bool
	Add(level, value string) error
	Remove(level, value string) error
}

// RawItem is the per-node input of Annotate.
type RawItem struct {
	Value      string
	Label      string
	Level      string
	Selected   bool
	IsFavorite bool
	Variable   *model.Variable
}

// Context carries what Annotate needs beyond the node itself.
type Context struct {
	Status           model.Status
	Children         []model.TableItem
	IsSelectedAll    bool
	FavoritesEnabled bool
}

// Annotate computes the selection and favorite flags of one node.
func Annotate(raw RawItem, ctx Context) model.TableItem {
	selectable := ctx.Children == nil &&
		raw.Variable.Kind().HasOptions() &&
		raw.Variable.HasOption(raw.Value)

	var selected bool
	if ctx.Children != nil {
		selected = len(ctx.Children) > 0
		for _, child := range ctx.Children {
			if !child.Selected {
				selected = false
				break
			}
		}
	} else if selectable {
		selected = ctx.IsSelectedAll || raw.Selected
	}

	canBeFavorite := ctx.FavoritesEnabled && selectable && raw.Value != model.AllText

	label := raw.Label
	if label == "" {
		label = raw.Value
	}

	item := model.TableItem{
		Value:         raw.Value,
		Label:         label,
		Selected:      selected,
		Selectable:    selectable,
		ShowStatus:    ctx.Status.Exist,
		StatusColor:   ctx.Status.Color,
		StatusImage:   ctx.Status.Image,
		CanBeFavorite: canBeFavorite,
		Children:      ctx.Children,
		Level:         raw.Level,
	}
	if canBeFavorite {
		fav := raw.IsFavorite
		item.IsFavorite = &fav
	}
	if raw.Variable != nil {
		item.Variable = raw.Variable.Name
	}
	return item
}

// AnnotatorConfig configures NewItemFactory.
type AnnotatorConfig struct {
	Variables        selection.VariableResolver
	DefaultVariable  string
	Favorites        Favorites
	FavoritesEnabled bool
	// Status returns the status lookup for a level. Nil disables statuses.
	Status func(level model.Level) status.Lookup
}

// VariableFor returns the name of the variable a level is bound to: the
// explicit binding, else a variable named like the level, else the default.
func (c AnnotatorConfig) VariableFor(level model.Level) string {
	if level.Variable != "" {
		return level.Variable
	}
	if c.Variables != nil && c.Variables.Variable(level.Name) != nil {
		return level.Name
	}
	return c.DefaultVariable
}

// NewItemFactory returns the item factory used to build the panel's tree.
func NewItemFactory(cfg AnnotatorConfig) tree.ItemFactory {
	return func(row tree.Row, level model.Level, children []model.TableItem) model.TableItem {
		value := model.FormatValue(row[level.Name])

		var v *model.Variable
		if cfg.Variables != nil {
			v = cfg.Variables.Variable(cfg.VariableFor(level))
		}

		raw := RawItem{Value: value, Label: value, Level: level.Name, Variable: v}
		if opt, ok := v.FindOption(value); ok && children == nil {
			raw.Label = opt.DisplayText()
			raw.Selected = opt.Selected
		}
		if cfg.Favorites != nil && cfg.FavoritesEnabled && children == nil {
			raw.IsFavorite = cfg.Favorites.IsFavorite(level.Name, value)
		}

		ctx := Context{
			Children:         children,
			IsSelectedAll:    v.IsSelectedAll(),
			FavoritesEnabled: cfg.FavoritesEnabled,
		}
		if cfg.Status != nil {
			if lookup := cfg.Status(level); lookup != nil {
				ctx.Status = lookup.Resolve(value)
			}
		}
		return Annotate(raw, ctx)
	}
}
