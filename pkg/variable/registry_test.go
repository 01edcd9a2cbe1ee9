package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/location"
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

func defs() []model.Variable {
	return []model.Variable{
		{
			Name: "device", Type: model.VariableCustom, Multi: true, IncludeAll: true,
			Options: []model.Option{
				{Value: model.AllValue, Text: model.AllText},
				{Value: "d1", Text: "d1", Selected: true},
				{Value: "d2", Text: "d2"},
			},
		},
		{Name: "query", Type: model.VariableTextbox},
	}
}

func TestRegistryWithoutStoreEntry(t *testing.T) {
	r := NewRegistry(defs(), location.New())

	v := r.Variable("device")
	require.NotNil(t, v)
	assert.False(t, v.HasCurrent)
	assert.Equal(t, []string{"d1"}, v.SelectedTexts(), "definition selection is kept")
	assert.Nil(t, r.Variable("missing"))
	assert.Equal(t, []string{"device", "query"}, r.Names())
}

func TestRegistryAppliesStore(t *testing.T) {
	store := location.New()
	store.Write("device", []string{"d2"})
	r := NewRegistry(defs(), store)

	v := r.Variable("device")
	assert.True(t, v.HasCurrent)
	assert.Equal(t, []string{"d2"}, v.Current)
	assert.Equal(t, []string{"d2"}, v.SelectedTexts())
	assert.False(t, v.IsSelectedAll())

	store.Write("device", []string{"All"})
	v = r.Variable("device")
	assert.True(t, v.IsSelectedAll())

	store.Write("device", nil)
	v = r.Variable("device")
	assert.Empty(t, v.SelectedTexts())
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := NewRegistry(defs(), nil)
	v := r.Variable("device")
	v.Options[1].Selected = false

	assert.True(t, r.Variable("device").Options[1].Selected)
}

func TestRegistryFreeText(t *testing.T) {
	store := location.New()
	store.Write("query", []string{"host=~a.*"})
	v := NewRegistry(defs(), store).Variable("query")

	assert.Equal(t, model.KindFreeText, v.Kind())
	assert.Equal(t, []string{"host=~a.*"}, v.SelectedTexts())
}
