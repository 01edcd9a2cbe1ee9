// Package ui renders selection trees for the terminal.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired, shared with threshold color names
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")

	// Favorites
	ColorFavorite = lipgloss.Color("#F1FA8C")
)

// Glyphs
const (
	GlyphGroup      = "▸"
	GlyphSelected   = "[x]"
	GlyphUnselected = "[ ]"
	GlyphStatus     = "●"
	GlyphFavorite   = "★"
	GlyphNoFavorite = "☆"
	GlyphEllipsis   = "…"
)

var (
	groupStyle      = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	countStyle      = lipgloss.NewStyle().Foreground(ColorMuted)
	selectedStyle   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	unselectedStyle = lipgloss.NewStyle().Foreground(ColorSubtext)
	labelStyle      = lipgloss.NewStyle().Foreground(ColorText)
	favoriteStyle   = lipgloss.NewStyle().Foreground(ColorFavorite)
	imageStyle      = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
	headerStyle     = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
)

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, color bool) string {
	if width <= 0 {
		return ""
	}
	line := strings.Repeat("─", width)
	if !color {
		return line
	}
	return lipgloss.NewStyle().Foreground(ColorBgHighlight).Render(line)
}

// RenderStatusDot renders a dot in the resolved status color. Colors that
// lipgloss cannot show (e.g. "transparent") render as a plain dot.
func RenderStatusDot(statusColor string, color bool) string {
	if !color || !strings.HasPrefix(statusColor, "#") {
		return GlyphStatus
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(GlyphStatus)
}

func paint(style lipgloss.Style, text string, color bool) string {
	if !color {
		return text
	}
	return style.Render(text)
}
