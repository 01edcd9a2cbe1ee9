package status

import "strings"

// Named threshold colors resolve to the dashboard palette. Anything that is
// not a known name (hex codes, rgb() strings) passes through unchanged.
var palette = map[string]string{
	"green":       "#50FA7B",
	"red":         "#FF5555",
	"orange":      "#FFB86C",
	"yellow":      "#F1FA8C",
	"blue":        "#8BE9FD",
	"purple":      "#BD93F9",
	"pink":        "#FF79C6",
	"text":        "#F8F8F2",
	"gray":        "#6272A4",
	"transparent": "transparent",
}

// ResolveColor maps a threshold color name to a concrete color string.
func ResolveColor(name string) string {
	if c, ok := palette[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return name
}
