package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

func boolPtr(b bool) *bool { return &b }

func sampleTree() []model.TableItem {
	return []model.TableItem{
		{
			Value:               "USA",
			ChildValues:         []string{"device1", "device11"},
			ChildFavoritesCount: 1,
			Children: []model.TableItem{
				{Value: "device1", Selectable: true, Selected: true, ShowStatus: true, StatusColor: "#FF5555", IsFavorite: boolPtr(true)},
				{Value: "device11", Selectable: true, ShowStatus: true, StatusImage: "ok.svg", IsFavorite: boolPtr(false)},
			},
		},
		{
			Value:       "Japan",
			Selected:    true,
			ChildValues: []string{"d2"},
			Children: []model.TableItem{
				{Value: "d2", Label: "Device two", Selectable: true, Selected: true},
			},
		},
	}
}

func TestRenderPlain(t *testing.T) {
	out := TreeRenderer{}.Render(sampleTree())
	want := strings.Join([]string{
		"▸ USA (2, ★1)",
		"  [x] device1    ● ★",
		"  [ ] device11   <ok.svg> ☆",
		"[x] Japan (1)",
		"  [x] Device two",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderTruncatesLabels(t *testing.T) {
	items := []model.TableItem{{Value: "a-very-long-device-name", Selectable: true}}
	out := TreeRenderer{LabelWidth: 6}.Render(items)
	assert.Equal(t, "[ ] a-ver…\n", out)
}

func TestRenderWideRunes(t *testing.T) {
	items := []model.TableItem{
		{Value: "東京", Selectable: true, ShowStatus: true},
		{Value: "abc", Selectable: true, ShowStatus: true},
	}
	out := TreeRenderer{}.Render(items)
	assert.Equal(t, "[ ] 東京 ●\n[ ] abc  ●\n", out)
}

func TestRenderEmptyWithHeader(t *testing.T) {
	out := TreeRenderer{Header: "geo"}.Render(nil)
	assert.Equal(t, "geo\n───\n(no selectable values)\n", out)
}

func TestRenderColorKeepsText(t *testing.T) {
	out := TreeRenderer{Color: true}.Render(sampleTree())
	assert.Contains(t, out, "device11")
	assert.Contains(t, out, GlyphFavorite)
}

func TestRenderStatusDotIgnoresNonHex(t *testing.T) {
	assert.Equal(t, GlyphStatus, RenderStatusDot("transparent", true))
	assert.Equal(t, GlyphStatus, RenderStatusDot("#FF5555", false))
}
