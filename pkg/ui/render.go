package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// TreeRenderer prints a selection tree, one node per line, children
// indented under their group.
type TreeRenderer struct {
	// Color enables ANSI styling.
	Color bool
	// LabelWidth truncates and pads leaf labels. Zero sizes the column to
	// the widest label.
	LabelWidth int
	// Header is printed above the tree when set.
	Header string
}

// Render returns the tree as text. An empty tree renders a placeholder.
func (r TreeRenderer) Render(items []model.TableItem) string {
	var sb strings.Builder
	if r.Header != "" {
		sb.WriteString(paint(headerStyle, r.Header, r.Color))
		sb.WriteString("\n")
		sb.WriteString(RenderDivider(runewidth.StringWidth(r.Header), r.Color))
		sb.WriteString("\n")
	}
	if len(items) == 0 {
		sb.WriteString(paint(countStyle, "(no selectable values)", r.Color))
		sb.WriteString("\n")
		return sb.String()
	}

	width := r.LabelWidth
	if width <= 0 {
		width = maxLabelWidth(items)
	}
	r.render(&sb, items, 0, width)
	return sb.String()
}

func (r TreeRenderer) render(sb *strings.Builder, items []model.TableItem, depth, width int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		sb.WriteString(indent)
		if item.Children != nil {
			sb.WriteString(r.groupLine(item))
			sb.WriteString("\n")
			r.render(sb, item.Children, depth+1, width)
			continue
		}
		sb.WriteString(r.leafLine(item, width))
		sb.WriteString("\n")
	}
}

func (r TreeRenderer) groupLine(item model.TableItem) string {
	mark := GlyphGroup
	if item.Selected {
		mark = paint(selectedStyle, GlyphSelected, r.Color)
	} else {
		mark = paint(groupStyle, mark, r.Color)
	}
	line := mark + " " + paint(groupStyle, label(item), r.Color)

	counts := fmt.Sprintf("(%d)", len(item.ChildValues))
	if item.ChildFavoritesCount > 0 {
		counts = fmt.Sprintf("(%d, %s%d)", len(item.ChildValues), GlyphFavorite, item.ChildFavoritesCount)
	}
	return line + " " + paint(countStyle, counts, r.Color)
}

func (r TreeRenderer) leafLine(item model.TableItem, width int) string {
	var parts []string
	if item.Selected {
		parts = append(parts, paint(selectedStyle, GlyphSelected, r.Color))
	} else {
		parts = append(parts, paint(unselectedStyle, GlyphUnselected, r.Color))
	}

	text := runewidth.Truncate(label(item), width, GlyphEllipsis)
	text = runewidth.FillRight(text, width)
	parts = append(parts, paint(labelStyle, text, r.Color))

	if item.ShowStatus {
		if item.StatusImage != "" {
			parts = append(parts, paint(imageStyle, "<"+item.StatusImage+">", r.Color))
		} else {
			parts = append(parts, RenderStatusDot(item.StatusColor, r.Color))
		}
	}
	if item.IsFavorite != nil {
		if *item.IsFavorite {
			parts = append(parts, paint(favoriteStyle, GlyphFavorite, r.Color))
		} else {
			parts = append(parts, paint(countStyle, GlyphNoFavorite, r.Color))
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func label(item model.TableItem) string {
	if item.Label != "" {
		return item.Label
	}
	return item.Value
}

func maxLabelWidth(items []model.TableItem) int {
	width := 0
	for _, item := range items {
		if item.Children != nil {
			if w := maxLabelWidth(item.Children); w > width {
				width = w
			}
			continue
		}
		if w := runewidth.StringWidth(label(item)); w > width {
			width = w
		}
	}
	return width
}
