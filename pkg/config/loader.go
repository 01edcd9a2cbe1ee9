package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides, e.g. HP_STATUS_FIELD.
const EnvPrefix = "HP_"

// FindConfigFile returns the config file to use.
// Priority: explicit path > hp.yaml > hp.yml
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"hp.yaml", "hp.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Relative paths are resolved against the config file's directory.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_files":     []string{DefaultDataFile},
		"variables_file": DefaultVariablesFile,
		"state_file":     DefaultStateFile,
		"favorites_db":   DefaultFavoritesDB,
		"status_mode":    DefaultStatusMode,
		"favorites":      true,
		"show_all":       false,
		"verbose":        false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	baseDir := ""
	if used := FindConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
		baseDir = filepath.Dir(used)
	}

	// HP_STATUS_FIELD -> status_field
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --data is repeatable and maps onto the file list
			if key == "data" {
				key = "data_files"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Paths given as flags are already relative to the working directory.
	if baseDir != "" {
		if !changed(flags, "data") {
			for i, p := range cfg.DataFiles {
				cfg.DataFiles[i] = resolvePathRelativeTo(p, baseDir)
			}
		}
		if !changed(flags, "variables-file") {
			cfg.VariablesFile = resolvePathRelativeTo(cfg.VariablesFile, baseDir)
		}
		if !changed(flags, "state-file") {
			cfg.StateFile = resolvePathRelativeTo(cfg.StateFile, baseDir)
		}
		if !changed(flags, "favorites-db") {
			cfg.FavoritesDB = resolvePathRelativeTo(cfg.FavoritesDB, baseDir)
		}
	}
	return &cfg, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func changed(flags *pflag.FlagSet, name string) bool {
	return flags != nil && flags.Changed(name)
}
