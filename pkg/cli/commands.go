package cli

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/tree"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/ui"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/watcher"
)

// ErrNoSource is returned when the active group's deepest source frame is
// not among the loaded frames.
var ErrNoSource = errors.New("source frame not found")

func newTreeCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the selection tree",
		Long: `Print the selection tree for the active levels group. Selected values
are marked [x], favorites with a star, and statuses with a colored dot or
their image name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderTree(cmd.OutOrStdout(), appFrom(cmd), search)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Fuzzy filter on labels")
	return cmd
}

func renderTree(w io.Writer, app *App, search string) error {
	items, ok := app.Rows()
	if !ok {
		g, _ := app.Panel.Group()
		return fmt.Errorf("%w for group %s", ErrNoSource, g.Name)
	}
	items = tree.Search(items, search)

	g, _ := app.Panel.Group()
	r := ui.TreeRenderer{Color: colorEnabled(w), Header: g.Name}
	_, err := io.WriteString(w, r.Render(items))
	return err
}

func newSelectCommand() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "select <value>",
		Short: "Select a node and cascade to its branch",
		Long: `Select a node of the tree. Clicking a group selects every value below it
and the group's own value; clicking a fully selected value again deselects
it. The resulting location state is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			items, ok := app.Rows()
			if !ok {
				return ErrNoSource
			}
			item, ok := findNode(items, level, args[0])
			if !ok {
				return fmt.Errorf("value not found in tree: %s", args[0])
			}

			updates := app.Panel.Select(items, item)
			if err := app.SaveLocation(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range updates {
				cur := app.Location.Read(u.Variable)
				_, _ = fmt.Fprintf(out, "%s = %s\n", u.Variable, strings.Join(cur.Values, ", "))
			}
			if len(updates) == 0 {
				_, _ = fmt.Fprintln(out, "nothing to update")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", "", "Level the value belongs to")
	return cmd
}

// findNode looks a value up by its value or label. "all" matches the All
// row regardless of case.
func findNode(items []model.TableItem, level, value string) (model.TableItem, bool) {
	if model.IsAll(value) {
		value = model.AllText
	}
	if item, ok := tree.Find(items, level, value); ok {
		return item, true
	}
	var found model.TableItem
	var ok bool
	tree.Walk(items, func(item model.TableItem, _ int) {
		if !ok && item.Label == value && (level == "" || item.Level == level) {
			found, ok = item, true
		}
	})
	return found, ok
}

func newFavoriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Manage favorite values",
	}

	add := &cobra.Command{
		Use:   "add <level> <value>",
		Short: "Star a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setFavorite(appFrom(cmd), args[0], args[1], true)
		},
	}
	remove := &cobra.Command{
		Use:   "remove <level> <value>",
		Short: "Unstar a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setFavorite(appFrom(cmd), args[0], args[1], false)
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			if app.Favorites == nil {
				return errors.New("favorites are disabled")
			}
			favs, err := app.Favorites.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range favs {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", f.Level, f.Value)
			}
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

// setFavorite stars or unstars a node of the active tree. Only nodes that
// can be favorited are accepted, so groups and the All row are rejected.
func setFavorite(app *App, level, value string, want bool) error {
	if app.Favorites == nil {
		return errors.New("favorites are disabled")
	}
	items, ok := app.Rows()
	if !ok {
		return ErrNoSource
	}
	item, ok := findNode(items, level, value)
	if !ok {
		return fmt.Errorf("value not found in tree: %s/%s", level, value)
	}
	if !item.CanBeFavorite {
		return fmt.Errorf("%s/%s cannot be a favorite", item.Level, item.Value)
	}
	if item.Favorite() == want {
		return nil
	}
	return app.Panel.ToggleFavorite(item)
}

func newGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List levels groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			active, _ := app.Panel.Group()
			out := cmd.OutOrStdout()
			for _, g := range app.Panel.Groups() {
				marker := " "
				if g.Name == active.Name {
					marker = "*"
				}
				names := make([]string, len(g.Levels))
				for i, l := range g.Levels {
					names[i] = l.Name + "@" + l.Source.String()
				}
				_, _ = fmt.Fprintf(out, "%s %s: %s\n", marker, g.Name, strings.Join(names, " > "))
			}
			return nil
		},
	}
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render the tree whenever an input file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			out := cmd.OutOrStdout()
			if err := renderTree(out, app, ""); err != nil {
				app.Logger.Warn("render failed", "error", err)
			}

			var mu sync.Mutex
			w, err := watcher.New(app.WatchedFiles(), 0, func() {
				mu.Lock()
				defer mu.Unlock()
				if err := app.Reload(); err != nil {
					app.Logger.Error("reload failed", "error", err)
					return
				}
				_, _ = fmt.Fprintln(out)
				if err := renderTree(out, app, ""); err != nil {
					app.Logger.Warn("render failed", "error", err)
				}
			}, app.Logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}
}
