package cli

import (
	"fmt"
	"log/slog"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/config"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/favorites"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/loader"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/location"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/picker"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/variable"
)

// App is the loaded state a command works on: frames, bound variables,
// the location state and favorites, tied together by a panel.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Groups    []model.LevelsGroup
	Frames    []model.Frame
	Location  *location.Store
	Variables *variable.Registry
	Favorites favorites.Store
	Panel     *picker.Panel
}

// OpenApp loads everything cfg points at.
func OpenApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	groups, err := cfg.LevelsGroups()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger, Groups: groups}
	if cfg.Favorites {
		store, err := favorites.OpenSQLite(cfg.FavoritesDB, logger)
		if err != nil {
			return nil, err
		}
		app.Favorites = store
	}
	if err := app.Reload(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Reload re-reads the data, variables and state files and rebuilds the
// panel, keeping the active levels group.
func (a *App) Reload() error {
	frames, missing, err := loader.LoadExistingFrames(a.Config.DataFiles...)
	if err != nil {
		return err
	}
	for _, path := range missing {
		a.Logger.Warn("data file missing, skipping it", "path", path)
	}
	defs, err := loader.LoadVariables(a.Config.VariablesFile)
	if err != nil {
		return err
	}
	loc, err := location.Load(a.Config.StateFile)
	if err != nil {
		return err
	}

	active := a.Config.Group
	if a.Panel != nil {
		if g, ok := a.Panel.Group(); ok {
			active = g.Name
		}
	}

	a.Frames = frames
	a.Location = loc
	a.Variables = variable.NewRegistry(defs, loc)

	var favs picker.Favorites
	if a.Favorites != nil {
		favs = a.Favorites
	}
	a.Panel = picker.NewPanel(picker.Options{
		Groups:           a.Groups,
		ActiveGroup:      active,
		DefaultVariable:  a.Config.Variable,
		StatusField:      a.Config.StatusField,
		StatusMode:       a.Config.Mode(),
		FavoritesEnabled: a.Config.Favorites,
		ShowAll:          a.Config.ShowAll,
	}, a.Variables, loc, favs, a.Logger)

	a.Logger.Debug("loaded",
		"frames", len(frames),
		"variables", len(defs),
		"state", loc.Encode())
	return nil
}

// Rows builds the tree for the active group.
func (a *App) Rows() ([]model.TableItem, bool) {
	return a.Panel.Rows(a.Frames)
}

// SaveLocation persists the location state.
func (a *App) SaveLocation() error {
	return a.Location.Save(a.Config.StateFile)
}

// WatchedFiles lists the files whose changes should refresh the tree.
func (a *App) WatchedFiles() []string {
	files := append([]string{}, a.Config.DataFiles...)
	if a.Config.VariablesFile != "" {
		files = append(files, a.Config.VariablesFile)
	}
	if a.Config.StateFile != "" {
		files = append(files, a.Config.StateFile)
	}
	return files
}

// Close releases the favorites database.
func (a *App) Close() error {
	if a.Favorites == nil {
		return nil
	}
	return a.Favorites.Close()
}
