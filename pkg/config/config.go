// Package config loads hp settings from defaults, hp.yaml, HP_ environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// ErrNoGroups is returned when no levels group is configured.
var ErrNoGroups = errors.New("no levels groups configured")

// Defaults
const (
	DefaultDataFile      = "data.yaml"
	DefaultVariablesFile = "variables.yaml"
	DefaultStateFile     = ".hp/state"
	DefaultFavoritesDB   = ".hp/favorites.db"
	DefaultStatusMode    = string(model.StatusModeColor)
)

// Config holds the resolved settings.
type Config struct {
	DataFiles     []string      `koanf:"data_files"`
	VariablesFile string        `koanf:"variables_file"`
	StateFile     string        `koanf:"state_file"`
	FavoritesDB   string        `koanf:"favorites_db"`
	Variable      string        `koanf:"variable"`
	StatusField   string        `koanf:"status_field"`
	StatusMode    string        `koanf:"status_mode"`
	Favorites     bool          `koanf:"favorites"`
	ShowAll       bool          `koanf:"show_all"`
	Group         string        `koanf:"group"`
	Groups        []GroupConfig `koanf:"groups"`
	Verbose       bool          `koanf:"verbose"`
}

// GroupConfig is a levels group as written in hp.yaml.
type GroupConfig struct {
	Name   string        `koanf:"name"`
	Levels []LevelConfig `koanf:"levels"`
}

// LevelConfig is a single level. Source is either a frame refId or a
// frame index.
type LevelConfig struct {
	Name     string `koanf:"name"`
	Source   any    `koanf:"source"`
	Variable string `koanf:"variable"`
}

// LevelsGroups converts the configured groups into validated model groups.
func (c *Config) LevelsGroups() ([]model.LevelsGroup, error) {
	if len(c.Groups) == 0 {
		return nil, ErrNoGroups
	}
	groups := make([]model.LevelsGroup, 0, len(c.Groups))
	for i, gc := range c.Groups {
		g := model.LevelsGroup{Name: gc.Name}
		if g.Name == "" {
			g.Name = fmt.Sprintf("group-%d", i+1)
		}
		for _, lc := range gc.Levels {
			src, err := model.ParseLevelSource(lc.Source)
			if err != nil {
				return nil, fmt.Errorf("group %s, level %s: %w", g.Name, lc.Name, err)
			}
			g.Levels = append(g.Levels, model.Level{Name: lc.Name, Source: src, Variable: lc.Variable})
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("group %s: %w", g.Name, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Mode returns the status display mode, falling back to color.
func (c *Config) Mode() model.StatusMode {
	m := model.StatusMode(c.StatusMode)
	if !m.IsValid() {
		return model.StatusModeColor
	}
	return m
}

// Validate checks settings that cannot be fixed up silently.
func (c *Config) Validate() error {
	if len(c.DataFiles) == 0 {
		return errors.New("at least one data file is required")
	}
	if c.StatusMode != "" && !model.StatusMode(c.StatusMode).IsValid() {
		return fmt.Errorf("invalid status_mode: %s (want color or image)", c.StatusMode)
	}
	return nil
}
