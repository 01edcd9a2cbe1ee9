package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

func buildDevices(t *testing.T) []model.TableItem {
	t.Helper()
	items, ok := Build(deviceFrames(), levels("country", "device"), testFactory(nil, nil))
	require.True(t, ok)
	return items
}

func TestFind(t *testing.T) {
	items := buildDevices(t)

	item, ok := Find(items, "device", "device11")
	require.True(t, ok)
	assert.Equal(t, "device", item.Level)

	item, ok = Find(items, "", "Japan")
	require.True(t, ok)
	assert.Equal(t, "country", item.Level)

	_, ok = Find(items, "country", "device11")
	assert.False(t, ok)
}

func TestFilterByValues(t *testing.T) {
	items := buildDevices(t)

	filtered := FilterByValues(items, []string{"device11"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "USA", filtered[0].Value)
	require.Len(t, filtered[0].Children, 1)
	assert.Equal(t, "device11", filtered[0].Children[0].Value)
	assert.Equal(t, []string{"device11"}, filtered[0].ChildValues)

	// the source tree is untouched
	assert.Equal(t, []string{"device1", "device11"}, items[0].ChildValues)

	assert.Empty(t, FilterByValues(items, []string{"nope"}))
}

func TestFlattenByDepth(t *testing.T) {
	items := buildDevices(t)

	flat := FlattenByDepth(items)
	require.Len(t, flat, 2)
	assert.Equal(t, DepthValues{Depth: 0, Level: "country", Variable: "country", Values: []string{"USA", "Japan"}}, flat[0])
	assert.Equal(t, DepthValues{Depth: 1, Level: "device", Variable: "device", Values: []string{"device1", "device11", "device12"}}, flat[1])
}

func TestFlattenByDepthSplitsVariables(t *testing.T) {
	items := []model.TableItem{
		{Value: "All", Level: "device", Variable: "device"},
		{Value: "USA", Level: "country", Variable: "country", Children: []model.TableItem{
			{Value: "device1", Level: "device", Variable: "device"},
		}},
	}

	flat := FlattenByDepth(items)
	require.Len(t, flat, 3)
	assert.Equal(t, "device", flat[0].Variable)
	assert.Equal(t, "country", flat[1].Variable)
	assert.Equal(t, 1, flat[2].Depth)
}

func TestSearch(t *testing.T) {
	items := buildDevices(t)

	assert.Equal(t, items, Search(items, ""))

	found := Search(items, "device12")
	require.Len(t, found, 1)
	assert.Equal(t, "Japan", found[0].Value)
	assert.Equal(t, []string{"device12"}, found[0].ChildValues)

	found = Search(items, "USA")
	require.Len(t, found, 1)
	assert.Len(t, found[0].Children, 2, "a matching group keeps its subtree")

	assert.Empty(t, Search(items, "zzz"))
}
