package tree

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// Walk visits every node depth first, parents before children.
func Walk(items []model.TableItem, fn func(item model.TableItem, depth int)) {
	walk(items, 0, fn)
}

func walk(items []model.TableItem, depth int, fn func(model.TableItem, int)) {
	for _, item := range items {
		fn(item, depth)
		if item.Children != nil {
			walk(item.Children, depth+1, fn)
		}
	}
}

// Find returns the first node produced by level with the given value. An
// empty level matches any level.
func Find(items []model.TableItem, level, value string) (model.TableItem, bool) {
	for _, item := range items {
		if item.Value == value && (level == "" || item.Level == level) {
			return item, true
		}
		if item.Children != nil {
			if found, ok := Find(item.Children, level, value); ok {
				return found, true
			}
		}
	}
	return model.TableItem{}, false
}

// FilterByValues keeps only the branches that lead to at least one of the
// given leaf values. Aggregates of the kept groups are recomputed over the
// kept children.
func FilterByValues(items []model.TableItem, values []string) []model.TableItem {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return filterByValues(items, set)
}

func filterByValues(items []model.TableItem, set map[string]bool) []model.TableItem {
	out := make([]model.TableItem, 0, len(items))
	for _, item := range items {
		if item.Children == nil {
			if set[item.Value] {
				out = append(out, item)
			}
			continue
		}
		if !intersects(item.ChildValues, set) {
			continue
		}
		item.Children = filterByValues(item.Children, set)
		item.ChildValues, item.ChildFavoritesCount = aggregate(item.Children)
		out = append(out, item)
	}
	return out
}

func intersects(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}

// DepthValues is the set of node values found at one depth of a tree, for
// one variable.
type DepthValues struct {
	Depth    int
	Level    string
	Variable string
	Values   []string
}

// FlattenByDepth collects node values per depth, root to leaf. Nodes at the
// same depth bound to different variables produce separate entries, in the
// order the variables were first seen.
func FlattenByDepth(items []model.TableItem) []DepthValues {
	type depthKey struct {
		depth    int
		variable string
	}
	var out []DepthValues
	index := make(map[depthKey]int)
	Walk(items, func(item model.TableItem, depth int) {
		key := depthKey{depth, item.Variable}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DepthValues{Depth: depth, Level: item.Level, Variable: item.Variable})
		}
		out[i].Values = appendUnique(out[i].Values, item.Value)
	})
	// Walk is pre-order; entries are re-sorted into depth order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth < out[j].Depth
	})
	return out
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

// Search keeps the nodes whose label fuzzily matches query together with
// their ancestors. A matching group keeps its whole subtree. An empty query
// returns items unchanged.
func Search(items []model.TableItem, query string) []model.TableItem {
	if query == "" {
		return items
	}
	return search(items, query)
}

func search(items []model.TableItem, query string) []model.TableItem {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label + " " + item.Value
	}
	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(query, labels) {
		matched[m.Index] = true
	}

	out := make([]model.TableItem, 0, len(items))
	for i, item := range items {
		if matched[i] {
			out = append(out, item)
			continue
		}
		if item.Children == nil {
			continue
		}
		children := search(item.Children, query)
		if len(children) == 0 {
			continue
		}
		item.Children = children
		item.ChildValues, item.ChildFavoritesCount = aggregate(children)
		out = append(out, item)
	}
	return out
}
