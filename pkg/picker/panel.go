package picker

import (
	"fmt"
	"log/slog"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/selection"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/status"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/tree"
)

// Options holds the panel settings that shape the tree.
type Options struct {
	Groups           []model.LevelsGroup
	ActiveGroup      string
	DefaultVariable  string
	StatusField      string
	StatusMode       model.StatusMode
	FavoritesEnabled bool
	// ShowAll prepends an "All" row when the deepest level's variable
	// offers the all option.
	ShowAll bool
}

// Panel builds the selection tree for the active levels group and applies
// clicks to the bound variables.
type Panel struct {
	opts      Options
	active    int
	variables selection.VariableResolver
	favorites Favorites
	cascade   *selection.Cascade
	logger    *slog.Logger
}

// NewPanel creates a panel. favorites may be nil when favorites are not
// persisted.
func NewPanel(opts Options, variables selection.VariableResolver, store selection.Store, favorites Favorites, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Panel{
		opts:      opts,
		variables: variables,
		favorites: favorites,
		cascade: selection.NewCascade(
			selection.NewReconciler(store, selection.WithLogger(logger)),
			variables,
			selection.WithLogger(logger),
		),
		logger: logger,
	}
	if opts.ActiveGroup != "" {
		if err := p.SetGroup(opts.ActiveGroup); err != nil {
			logger.Warn("unknown levels group, using the first one", "group", opts.ActiveGroup)
		}
	}
	return p
}

// Groups returns the configured levels groups.
func (p *Panel) Groups() []model.LevelsGroup {
	return p.opts.Groups
}

// Group returns the active levels group.
func (p *Panel) Group() (model.LevelsGroup, bool) {
	if p.active < 0 || p.active >= len(p.opts.Groups) {
		return model.LevelsGroup{}, false
	}
	return p.opts.Groups[p.active], true
}

// SetGroup switches the active levels group by name.
func (p *Panel) SetGroup(name string) error {
	for i, g := range p.opts.Groups {
		if g.Name == name {
			p.active = i
			return nil
		}
	}
	return fmt.Errorf("levels group not found: %s", name)
}

func (p *Panel) annotator(frames []model.Frame) AnnotatorConfig {
	lookups := make(map[string]status.Lookup)
	return AnnotatorConfig{
		Variables:        p.variables,
		DefaultVariable:  p.opts.DefaultVariable,
		Favorites:        p.favorites,
		FavoritesEnabled: p.opts.FavoritesEnabled,
		Status: func(level model.Level) status.Lookup {
			if p.opts.StatusField == "" {
				return nil
			}
			if lookup, ok := lookups[level.Name]; ok {
				return lookup
			}
			frame := model.FindFrame(frames, level.Source)
			lookup := status.ForFrame(frame, level.Name, p.opts.StatusField, status.Options{Mode: p.opts.StatusMode})
			lookups[level.Name] = lookup
			return lookup
		},
	}
}

// Rows rebuilds the tree for the active group from scratch. The second result
// is false when the group is missing or its deepest source frame is absent.
func (p *Panel) Rows(frames []model.Frame) ([]model.TableItem, bool) {
	group, ok := p.Group()
	if !ok || len(group.Levels) == 0 {
		return nil, false
	}
	cfg := p.annotator(frames)
	items, ok := tree.Build(frames, group.Levels, NewItemFactory(cfg))
	if !ok {
		p.logger.Debug("source frame not available",
			"group", group.Name, "source", group.Last().Source.String())
		return nil, false
	}

	if p.opts.ShowAll {
		if all, ok := p.allRow(cfg, group.Last()); ok {
			items = append([]model.TableItem{all}, items...)
		}
	}
	return items, true
}

// allRow builds the "All" leaf for the deepest level's variable.
func (p *Panel) allRow(cfg AnnotatorConfig, last model.Level) (model.TableItem, bool) {
	if p.variables == nil {
		return model.TableItem{}, false
	}
	v := p.variables.Variable(cfg.VariableFor(last))
	if v == nil || !v.IncludeAll {
		return model.TableItem{}, false
	}
	item := Annotate(RawItem{
		Value:    model.AllText,
		Label:    model.AllText,
		Level:    last.Name,
		Selected: v.IsSelectedAll(),
		Variable: v,
	}, Context{IsSelectedAll: v.IsSelectedAll(), FavoritesEnabled: p.opts.FavoritesEnabled})
	return item, item.Selectable
}

// Select applies a click on item to the bound variables and returns the
// committed updates.
func (p *Panel) Select(items []model.TableItem, item model.TableItem) []selection.Update {
	return p.cascade.Apply(items, item)
}

// ToggleFavorite flips the favorite state of item. Items that cannot be
// favorited are ignored.
func (p *Panel) ToggleFavorite(item model.TableItem) error {
	if p.favorites == nil || !item.CanBeFavorite {
		return nil
	}
	if item.Favorite() {
		if err := p.favorites.Remove(item.Level, item.Value); err != nil {
			return fmt.Errorf("remove favorite %s/%s: %w", item.Level, item.Value, err)
		}
		return nil
	}
	if err := p.favorites.Add(item.Level, item.Value); err != nil {
		return fmt.Errorf("add favorite %s/%s: %w", item.Level, item.Value, err)
	}
	return nil
}
