// Package tree turns columnar frames into a nested selection tree and offers
// helpers to walk, filter and flatten the result.
package tree

import (
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// Row is one materialized frame row: column name -> cell value.
type Row map[string]any

// ItemFactory builds a tree node for a row at the given level. children is
// nil for leaf levels and the already-built child nodes for group levels.
// Callers inject different factories to stamp different selection semantics
// onto the same tree shape.
type ItemFactory func(row Row, level model.Level, children []model.TableItem) model.TableItem

// Rows materializes a frame into row maps, one per row.
func Rows(frame *model.Frame) []Row {
	n := frame.Len()
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		row := make(Row, len(frame.Fields))
		for _, field := range frame.Fields {
			if i < len(field.Values) {
				row[field.Name] = field.Values[i]
			} else {
				row[field.Name] = nil
			}
		}
		rows[i] = row
	}
	return rows
}

// Build groups the rows of the deepest level's source frame by each level in
// turn. The second result is false only when that frame is missing, which
// means the data for this configuration is not available yet. An empty frame
// yields an empty, non-nil slice.
func Build(frames []model.Frame, levels []model.Level, factory ItemFactory) ([]model.TableItem, bool) {
	if len(levels) == 0 || factory == nil {
		return []model.TableItem{}, true
	}
	frame := model.FindFrame(frames, levels[len(levels)-1].Source)
	if frame == nil {
		return nil, false
	}
	return buildLevel(Rows(frame), levels, 0, factory), true
}

func buildLevel(rows []Row, levels []model.Level, depth int, factory ItemFactory) []model.TableItem {
	level := levels[depth]

	if depth == len(levels)-1 {
		items := make([]model.TableItem, 0, len(rows))
		for _, row := range rows {
			item := factory(row, level, nil)
			if item.Selectable {
				items = append(items, item)
			}
		}
		return items
	}

	groups := groupBy(rows, level.Name)
	items := make([]model.TableItem, 0, len(groups))
	for _, g := range groups {
		children := buildLevel(g.rows, levels, depth+1, factory)
		item := factory(g.rows[0], level, children)
		item.Children = children
		item.ChildValues, item.ChildFavoritesCount = aggregate(children)
		if len(item.ChildValues) == 0 && !item.Selectable {
			continue
		}
		items = append(items, item)
	}
	return items
}

type rowGroup struct {
	key  string
	rows []Row
}

// groupBy partitions rows by the string form of row[key], keeping groups in
// the order their key was first seen.
func groupBy(rows []Row, key string) []rowGroup {
	index := make(map[string]int)
	var groups []rowGroup
	for _, row := range rows {
		k := model.FormatValue(row[key])
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, rowGroup{key: k})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

// aggregate collects the leaf values and favorite count of a child list.
func aggregate(children []model.TableItem) ([]string, int) {
	values := make([]string, 0, len(children))
	favorites := 0
	for _, child := range children {
		if child.Children != nil {
			values = append(values, child.ChildValues...)
		} else {
			values = append(values, child.Value)
		}
		if child.Children != nil {
			favorites += child.ChildFavoritesCount
		} else if child.Favorite() {
			favorites++
		}
	}
	return values, favorites
}
