package model

import (
	"fmt"
	"strconv"
	"strings"
)

// LevelSource identifies the frame a level reads its column from: either a
// frame reference id ("A") or a positional index into the frame list.
type LevelSource struct {
	RefID   string
	Index   int
	ByIndex bool
}

// SourceRef returns a source that matches a frame by reference id.
func SourceRef(refID string) LevelSource {
	return LevelSource{RefID: refID}
}

// SourceIndex returns a source that matches a frame by position.
func SourceIndex(index int) LevelSource {
	return LevelSource{Index: index, ByIndex: true}
}

// ParseLevelSource converts a decoded config value (string or integer) into a
// LevelSource. Numeric strings are treated as reference ids, not indexes.
func ParseLevelSource(raw any) (LevelSource, error) {
	switch v := raw.(type) {
	case nil:
		return LevelSource{}, fmt.Errorf("level source is required")
	case string:
		return SourceRef(v), nil
	case int:
		return SourceIndex(v), nil
	case int64:
		return SourceIndex(int(v)), nil
	case uint64:
		return SourceIndex(int(v)), nil
	case float64:
		if v != float64(int(v)) {
			return LevelSource{}, fmt.Errorf("level source index must be an integer, got %v", v)
		}
		return SourceIndex(int(v)), nil
	case LevelSource:
		return v, nil
	}
	return LevelSource{}, fmt.Errorf("unsupported level source type %T", raw)
}

// String renders the source the way it appears in config.
func (s LevelSource) String() string {
	if s.ByIndex {
		return strconv.Itoa(s.Index)
	}
	return s.RefID
}

// Level is one grouping key of the hierarchy. Order of levels defines tree
// depth, shallowest first.
type Level struct {
	Name   string      // column name used as the grouping key
	Source LevelSource // frame the column is read from
	// Variable optionally binds this level to a named variable. When empty
	// the level binds to a variable with the same name as the level, and
	// failing that to the panel default.
	Variable string
}

// LevelsGroup is a named, ordered list of levels (one selectable view of the
// hierarchy).
type LevelsGroup struct {
	Name   string
	Levels []Level
}

// Validate checks that the group can drive a tree build.
func (g LevelsGroup) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("levels group name cannot be empty")
	}
	if len(g.Levels) == 0 {
		return fmt.Errorf("levels group %q has no levels", g.Name)
	}
	seen := make(map[string]bool, len(g.Levels))
	for i, level := range g.Levels {
		if level.Name == "" {
			return fmt.Errorf("levels group %q: level %d has no name", g.Name, i)
		}
		if seen[level.Name] {
			return fmt.Errorf("levels group %q: duplicate level %q", g.Name, level.Name)
		}
		seen[level.Name] = true
	}
	return nil
}

// Last returns the deepest level. The group must not be empty.
func (g LevelsGroup) Last() Level {
	return g.Levels[len(g.Levels)-1]
}

// Clone returns a copy whose level slice can be modified independently.
func (g LevelsGroup) Clone() LevelsGroup {
	clone := g
	if g.Levels != nil {
		clone.Levels = make([]Level, len(g.Levels))
		copy(clone.Levels, g.Levels)
	}
	return clone
}
